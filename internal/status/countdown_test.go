// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// NORMALIZATION TESTS
// =============================================================================

func TestNormalizeTimestamp_TruncatesToMicroseconds(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-06-04T14:38:31Z", "2024-06-04T14:38:31Z"},
		{"2024-06-04T14:38:31.8Z", "2024-06-04T14:38:31.8Z"},
		{"2024-06-04T14:38:31.837534Z", "2024-06-04T14:38:31.837534Z"},
		{"2024-06-04T14:38:31.8375345Z", "2024-06-04T14:38:31.837534Z"},
		{"2024-06-04T14:38:31.837534589Z", "2024-06-04T14:38:31.837534Z"},
		{"2024-06-04T14:38:31.837534589-07:00", "2024-06-04T14:38:31.837534-07:00"},
		{"2024-06-04T14:38:31.123456789+00:00", "2024-06-04T14:38:31.123456+00:00"},
		{"2024-06-04T14:38:31.5", "2024-06-04T14:38:31.5Z"},
		{"2024-06-04T14:38:31", "2024-06-04T14:38:31Z"},
		{"2024-06-04T14:38:31.25z", "2024-06-04T14:38:31.25Z"},
	}

	for _, tc := range tests {
		got, err := NormalizeTimestamp(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseExpiry_AcceptsZeroToNineFractionDigits(t *testing.T) {
	frac := "123456789"
	for n := 0; n <= 9; n++ {
		ts := "2030-01-02T03:04:05"
		if n > 0 {
			ts += "." + frac[:n]
		}
		ts += "Z"

		got, err := ParseExpiry(ts)
		require.NoError(t, err, ts)
		assert.Equal(t, 2030, got.Year())
		assert.Equal(t, time.UTC, got.Location())
		assert.Zero(t, got.Nanosecond()%1000, "sub-microsecond digits must be dropped: %s", ts)
	}
}

func TestParseExpiry_ConvertsOffsetsToUTC(t *testing.T) {
	got, err := ParseExpiry("2024-06-04T14:38:31.837534589-07:00")
	require.NoError(t, err)
	assert.Equal(t, 21, got.Hour())
	assert.Equal(t, 837534000, got.Nanosecond())
}

func TestParseExpiry_RejectsMalformedFraction(t *testing.T) {
	for _, in := range []string{
		"2024-06-04T14:38:31.12ab34Z",
		"2024-06-04T14:38:31.Z",
		"",
		"yesterday",
	} {
		_, err := ParseExpiry(in)
		require.Error(t, err, in)

		var tsErr *TimestampError
		assert.True(t, errors.As(err, &tsErr), "want *TimestampError for %q, got %T", in, err)
	}
}

// =============================================================================
// CLASSIFICATION TESTS
// =============================================================================

func TestClassify_Boundaries(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		state     State
		text      string
	}{
		{"sentinel", time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), StateNotLoaded, "Not Loaded"},
		{"year 1999", time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), StateNotLoaded, "Not Loaded"},
		{"just past a year", now.Add(365*24*time.Hour + time.Second), StatePermanent, "Permanent"},
		{"far future", time.Date(2318, 1, 1, 0, 0, 0, 0, time.UTC), StatePermanent, "Permanent"},
		{"exactly a year", now.Add(365 * 24 * time.Hour), StateExpiring, "Expires in 525600m 0s"},
		{"now", now, StateExpired, "Expired"},
		{"past", now.Add(-time.Minute), StateExpired, "Expired"},
		{"one second", now.Add(time.Second), StateExpiring, "Expires in 0m 1s"},
		{"truncated not rounded", now.Add(90*time.Second + 999*time.Millisecond), StateExpiring, "Expires in 1m 30s"},
		{"sub-second", now.Add(400 * time.Millisecond), StateExpiring, "Expires in 0m 0s"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cd := Classify(tc.expiresAt, now)
			assert.Equal(t, tc.state, cd.State)
			assert.Equal(t, tc.text, cd.String())
		})
	}
}

func TestDescribe_InvalidTimestamp(t *testing.T) {
	cd := Describe(ModelStatus{Name: "broken", ExpiresAt: "2024-06-04T14:38:31.xyzZ"}, time.Now())

	assert.Equal(t, StateInvalid, cd.State)
	assert.Error(t, cd.Err)
	assert.Equal(t, "Invalid expiry", cd.String())
}

func TestDescribe_NeverLoaded(t *testing.T) {
	cd := Describe(ModelStatus{Name: "llama3", ExpiresAt: NeverLoaded}, time.Now())
	assert.Equal(t, StateNotLoaded, cd.State)
}
