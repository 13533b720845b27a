// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// TIMESTAMP NORMALIZATION
// =============================================================================

// maxFractionDigits is the precision kept from the runtime's timestamps.
// Some runtime versions emit nanoseconds; everything past microseconds is
// dropped before parsing.
const maxFractionDigits = 6

// TimestampError reports an expires_at value that cannot be interpreted.
type TimestampError struct {
	Value  string
	Reason string
	Cause  error
}

func (e *TimestampError) Error() string {
	msg := fmt.Sprintf("invalid expires_at %q: %s", e.Value, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TimestampError) Unwrap() error {
	return e.Cause
}

// NormalizeTimestamp truncates the fractional-seconds component of an
// ISO-8601 timestamp to at most six digits, keeping the zone designator.
// A timestamp without a zone is treated as UTC. Non-numeric fractional
// content is rejected rather than guessed at.
func NormalizeTimestamp(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &TimestampError{Value: s, Reason: "empty timestamp"}
	}

	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		if !hasZone(s) {
			s += "Z"
		}
		return upperZ(s), nil
	}

	head, rest := s[:dot], s[dot+1:]
	frac, zone := rest, ""
	if end := strings.IndexAny(rest, "Zz+-"); end >= 0 {
		frac, zone = rest[:end], rest[end:]
	}

	if frac == "" {
		return "", &TimestampError{Value: s, Reason: "empty fractional seconds"}
	}
	for _, c := range frac {
		if c < '0' || c > '9' {
			return "", &TimestampError{Value: s, Reason: "non-numeric fractional seconds"}
		}
	}
	if len(frac) > maxFractionDigits {
		frac = frac[:maxFractionDigits]
	}
	if zone == "" {
		zone = "Z"
	}

	return head + "." + frac + upperZ(zone), nil
}

// ParseExpiry normalizes and parses an expires_at value as a UTC instant.
func ParseExpiry(s string) (time.Time, error) {
	normalized, err := NormalizeTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, normalized)
	if err != nil {
		return time.Time{}, &TimestampError{Value: s, Reason: "not RFC 3339", Cause: err}
	}
	return t.UTC(), nil
}

// hasZone reports whether the time part of s carries Z or a numeric offset.
func hasZone(s string) bool {
	t := strings.IndexAny(s, "Tt ")
	if t < 0 {
		return false
	}
	return strings.ContainsAny(s[t:], "Zz+-")
}

func upperZ(s string) string {
	if strings.HasSuffix(s, "z") {
		return s[:len(s)-1] + "Z"
	}
	return s
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// PermanentThreshold is the remaining time beyond which a model is shown as
// pinned. The runtime reports keep_alive -1 as a far-future expiry.
const PermanentThreshold = 365 * 24 * time.Hour

// sentinelYear: any expiry before this year is the "never loaded" sentinel.
const sentinelYear = 2000

// State is the residency classification of a model at a point in time.
type State int

const (
	StateNotLoaded State = iota
	StatePermanent
	StateExpired
	StateExpiring
	StateInvalid
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateNotLoaded:
		return "not_loaded"
	case StatePermanent:
		return "permanent"
	case StateExpired:
		return "expired"
	case StateExpiring:
		return "expiring"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Countdown is the classification of one model's expiry relative to now.
type Countdown struct {
	State     State
	Remaining time.Duration // only meaningful for StateExpiring
	Err       error         // set for StateInvalid
}

// Classify compares an expiry instant against now.
func Classify(expiresAt, now time.Time) Countdown {
	if expiresAt.Year() < sentinelYear {
		return Countdown{State: StateNotLoaded}
	}

	remaining := expiresAt.Sub(now)
	switch {
	case remaining > PermanentThreshold:
		return Countdown{State: StatePermanent}
	case remaining <= 0:
		return Countdown{State: StateExpired}
	default:
		return Countdown{State: StateExpiring, Remaining: remaining}
	}
}

// Describe parses a status record's expiry and classifies it. A malformed
// timestamp yields StateInvalid carrying the parse error.
func Describe(ms ModelStatus, now time.Time) Countdown {
	expiresAt, err := ParseExpiry(ms.ExpiresAt)
	if err != nil {
		return Countdown{State: StateInvalid, Err: err}
	}
	return Classify(expiresAt, now)
}

// String renders the countdown for display. Minutes and seconds are
// truncated from the total remaining whole seconds, never rounded.
func (c Countdown) String() string {
	switch c.State {
	case StateNotLoaded:
		return "Not Loaded"
	case StatePermanent:
		return "Permanent"
	case StateExpired:
		return "Expired"
	case StateExpiring:
		secs := int64(c.Remaining / time.Second)
		return fmt.Sprintf("Expires in %dm %ds", secs/60, secs%60)
	case StateInvalid:
		return "Invalid expiry"
	default:
		return "Unknown"
	}
}
