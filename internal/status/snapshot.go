// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"sort"
	"time"
)

// NeverLoaded is the expires_at sentinel for an installed model that is not
// resident. It matches the zero time the runtime itself reports.
const NeverLoaded = "0001-01-01T00:00:00Z"

// ModelStatus is the last-known residency record for one installed model.
type ModelStatus struct {
	Name      string
	ExpiresAt string // raw wire timestamp, NeverLoaded when not resident
	Size      int64  // bytes on disk, from /api/tags
	SizeVRAM  int64  // bytes in VRAM, from /api/ps (0 when not resident)
}

// Resident reports whether the runtime listed the model as loaded.
func (s ModelStatus) Resident() bool {
	return s.ExpiresAt != NeverLoaded
}

// Snapshot is an immutable name-ordered mapping of model name to ModelStatus.
// The zero value is an empty snapshot.
type Snapshot struct {
	entries   []ModelStatus
	index     map[string]int
	fetchedAt time.Time
}

// NewSnapshot builds a snapshot from entries, sorting them by name.
// When a name occurs more than once the first occurrence wins.
func NewSnapshot(entries []ModelStatus, fetchedAt time.Time) *Snapshot {
	sorted := make([]ModelStatus, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		sorted = append(sorted, e)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	index := make(map[string]int, len(sorted))
	for i, e := range sorted {
		index[e.Name] = i
	}

	return &Snapshot{entries: sorted, index: index, fetchedAt: fetchedAt}
}

// Len returns the number of models in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// At returns the i-th entry in name order.
func (s *Snapshot) At(i int) ModelStatus {
	return s.entries[i]
}

// Get looks up a model by name.
func (s *Snapshot) Get(name string) (ModelStatus, bool) {
	if s == nil {
		return ModelStatus{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return ModelStatus{}, false
	}
	return s.entries[i], true
}

// Entries returns a copy of all entries in name order.
func (s *Snapshot) Entries() []ModelStatus {
	if s == nil {
		return nil
	}
	out := make([]ModelStatus, len(s.entries))
	copy(out, s.entries)
	return out
}

// Names returns the model names in order.
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// FetchedAt returns when the underlying data was retrieved.
func (s *Snapshot) FetchedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.fetchedAt
}

// Equal reports whether two snapshots hold the same entries, ignoring
// FetchedAt.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

// ResidentCount returns how many models are currently loaded.
func (s *Snapshot) ResidentCount() int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		if s.entries[i].Resident() {
			n++
		}
	}
	return n
}
