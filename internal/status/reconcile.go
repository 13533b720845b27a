// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"context"
	"log/slog"
	"time"

	"github.com/jeranaias/keeper/internal/ollama"
)

// Source is the slice of the runtime API the reconciler reads from.
// *ollama.Client satisfies it.
type Source interface {
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)
	ListRunningModels(ctx context.Context) ([]ollama.RunningModel, error)
}

// ConnectionError reports that the runtime could not be reached, or answered
// with a failure, during reconciliation.
type ConnectionError struct {
	Op    string // "list installed models" or "list loaded models"
	Cause error
}

func (e *ConnectionError) Error() string {
	return "could not connect to Ollama (" + e.Op + "): " + e.Cause.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Reconciler merges the installed and loaded model lists into a Snapshot.
type Reconciler struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
}

// NewReconciler creates a reconciler reading from source.
func NewReconciler(source Source, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{source: source, logger: logger, now: time.Now}
}

// Reconcile fetches both lists and returns a fresh snapshot holding exactly
// one entry per installed model. Loaded models carry the runtime's record;
// the rest get the NeverLoaded sentinel.
//
// On any failure it returns a *ConnectionError and no snapshot, so the
// caller's previous snapshot stays authoritative.
func (r *Reconciler) Reconcile(ctx context.Context) (*Snapshot, error) {
	start := r.now()

	installed, err := r.source.ListModels(ctx)
	if err != nil {
		r.logger.Warn("reconcile failed", "op", "tags", "error", err)
		return nil, &ConnectionError{Op: "list installed models", Cause: err}
	}

	running, err := r.source.ListRunningModels(ctx)
	if err != nil {
		r.logger.Warn("reconcile failed", "op", "ps", "error", err)
		return nil, &ConnectionError{Op: "list loaded models", Cause: err}
	}

	snap := Merge(installed, running, r.now())

	r.logger.Info("reconciled model statuses",
		"installed", snap.Len(),
		"loaded", snap.ResidentCount(),
		"elapsed", r.now().Sub(start).String(),
	)
	return snap, nil
}

// Merge is the pure half of Reconcile. Loaded models that are not installed
// are ignored.
func Merge(installed []ollama.ModelInfo, running []ollama.RunningModel, fetchedAt time.Time) *Snapshot {
	loaded := make(map[string]ollama.RunningModel, len(running))
	for _, m := range running {
		loaded[m.Name] = m
	}

	entries := make([]ModelStatus, 0, len(installed))
	for _, m := range installed {
		entry := ModelStatus{Name: m.Name, ExpiresAt: NeverLoaded, Size: m.Size}
		if rm, ok := loaded[m.Name]; ok {
			entry.ExpiresAt = rm.ExpiresAt
			entry.SizeVRAM = rm.SizeVRAM
			if entry.ExpiresAt == "" {
				entry.ExpiresAt = NeverLoaded
			}
		}
		entries = append(entries, entry)
	}

	return NewSnapshot(entries, fetchedAt)
}
