// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// KeepAlive is the keep_alive directive sent with an inference request.
//
// The runtime accepts either the integer -1 (stay resident indefinitely) or a
// duration string such as "1s". The value is passed through literally; keeper
// never computes durations itself.
type KeepAlive struct {
	forever  bool
	duration string
}

// KeepForever keeps a model resident until it is explicitly unloaded.
var KeepForever = KeepAlive{forever: true}

// UnloadNow asks the runtime to evict the model almost immediately.
var UnloadNow = KeepAlive{duration: "1s"}

// KeepFor returns a directive that keeps the model resident for d.
func KeepFor(d string) KeepAlive {
	return KeepAlive{duration: d}
}

// ParseKeepAlive parses a configured keep-alive value.
// "-1", "forever" and "indefinite" map to KeepForever; anything else must be a
// valid Go duration string.
func ParseKeepAlive(s string) (KeepAlive, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "-1", "forever", "indefinite":
		return KeepForever, nil
	case "":
		return KeepAlive{}, fmt.Errorf("keep_alive is empty")
	}
	if _, err := time.ParseDuration(s); err != nil {
		return KeepAlive{}, fmt.Errorf("invalid keep_alive %q: %w", s, err)
	}
	return KeepFor(s), nil
}

// IsForever reports whether the directive pins the model indefinitely.
func (k KeepAlive) IsForever() bool {
	return k.forever
}

// String returns the literal value as it appears on the wire.
func (k KeepAlive) String() string {
	if k.forever {
		return "-1"
	}
	return k.duration
}

// MarshalJSON encodes -1 as a JSON number and durations as JSON strings.
func (k KeepAlive) MarshalJSON() ([]byte, error) {
	if k.forever {
		return []byte("-1"), nil
	}
	return json.Marshal(k.duration)
}

// UnmarshalJSON accepts both wire forms.
func (k *KeepAlive) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 {
			*k = KeepForever
			return nil
		}
		*k = KeepFor(fmt.Sprintf("%ds", n))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("keep_alive must be a number or a duration string: %w", err)
	}
	parsed, err := ParseKeepAlive(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
