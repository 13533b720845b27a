// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"encoding/json"
	"testing"
)

func TestKeepAlive_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		k    KeepAlive
		want string
	}{
		{"forever", KeepForever, `-1`},
		{"unload", UnloadNow, `"1s"`},
		{"custom", KeepFor("5m"), `"5m"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.k)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Marshal() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestKeepAlive_UnmarshalJSON(t *testing.T) {
	var k KeepAlive
	if err := json.Unmarshal([]byte(`-1`), &k); err != nil || !k.IsForever() {
		t.Errorf("Unmarshal(-1) = %v, %v; want forever", k, err)
	}
	if err := json.Unmarshal([]byte(`"30s"`), &k); err != nil || k.String() != "30s" {
		t.Errorf("Unmarshal(\"30s\") = %v, %v", k, err)
	}
	if err := json.Unmarshal([]byte(`"soon"`), &k); err == nil {
		t.Error("Unmarshal(\"soon\") should fail")
	}
}

func TestParseKeepAlive(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		forever bool
		wantErr bool
	}{
		{"-1", "-1", true, false},
		{"forever", "-1", true, false},
		{" 1s ", "1s", false, false},
		{"10m", "10m", false, false},
		{"", "", false, true},
		{"later", "", false, true},
	}

	for _, tc := range tests {
		got, err := ParseKeepAlive(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseKeepAlive(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if tc.wantErr {
			continue
		}
		if got.String() != tc.want || got.IsForever() != tc.forever {
			t.Errorf("ParseKeepAlive(%q) = %q (forever=%v), want %q (forever=%v)",
				tc.in, got.String(), got.IsForever(), tc.want, tc.forever)
		}
	}
}
