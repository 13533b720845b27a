// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/keeper/internal/config"
	"github.com/jeranaias/keeper/internal/ollama"
	"github.com/jeranaias/keeper/internal/residency"
	"github.com/jeranaias/keeper/internal/status"
)

// =============================================================================
// FAKE RUNTIME
// =============================================================================

type fakeRuntime struct {
	mu       sync.Mutex
	requests []recorded
	loaded   map[string]string // model -> expires_at
}

type recorded struct {
	Path      string
	Model     string          `json:"model"`
	KeepAlive json.RawMessage `json:"keep_alive"`
}

func newFakeRuntime(t *testing.T, installed ...string) (*fakeRuntime, *httptest.Server) {
	t.Helper()
	f := &fakeRuntime{loaded: map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		models := make([]map[string]string, len(installed))
		for i, n := range installed {
			models[i] = map[string]string{"name": n}
		}
		json.NewEncoder(w).Encode(map[string]any{"models": models})
	})
	mux.HandleFunc("/api/ps", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		models := []map[string]string{}
		for n, exp := range f.loaded {
			models = append(models, map[string]string{"name": n, "expires_at": exp})
		}
		json.NewEncoder(w).Encode(map[string]any{"models": models})
	})
	infer := func(w http.ResponseWriter, r *http.Request) {
		var rec recorded
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec.Path = r.URL.Path

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		if string(rec.KeepAlive) == "-1" {
			f.loaded[rec.Model] = "2318-01-01T00:00:00Z"
		} else {
			delete(f.loaded, rec.Model)
		}
		f.mu.Unlock()

		json.NewEncoder(w).Encode(map[string]any{"model": rec.Model, "done": true})
	}
	mux.HandleFunc("/api/chat", infer)
	mux.HandleFunc("/api/generate", infer)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

// =============================================================================
// HELPERS
// =============================================================================

// isolate points HOME at a temp dir, clears keeper's environment and writes
// a config that logs to stderr and does not wait after residency changes.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"KEEPER_OLLAMA_URL", "OLLAMA_HOST", "KEEPER_LOG_LEVEL", "KEEPER_CHAT_KEYWORDS", "NO_COLOR", "FORCE_COLOR"} {
		t.Setenv(k, "")
	}

	path := filepath.Join(home, "config.toml")
	body := "[residency]\nsettle_delay_ms = 0\n\n[logging]\nfile_output = false\nlevel = \"error\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// =============================================================================
// STATUS
// =============================================================================

func TestStatus_PrintsAlignedPlainRows(t *testing.T) {
	cfgPath := isolate(t)
	f, srv := newFakeRuntime(t, "nomic-embed-text", "llama3:8b")
	f.loaded["llama3:8b"] = "2318-01-01T00:00:00Z"

	out, _, err := run(t, "status", "--config", cfgPath, "--url", srv.URL)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, status.FormatRow("llama3:8b", "Permanent", status.DefaultNameWidth), lines[0])
	assert.Equal(t, status.FormatRow("nomic-embed-text", "Not Loaded", status.DefaultNameWidth), lines[1])
	assert.NotContains(t, out, "\x1b[", "piped output is never styled")
}

func TestStatus_NoModels(t *testing.T) {
	cfgPath := isolate(t)
	_, srv := newFakeRuntime(t)

	out, _, err := run(t, "status", "--config", cfgPath, "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "No models installed")
}

func TestStatus_RuntimeDown(t *testing.T) {
	cfgPath := isolate(t)
	_, srv := newFakeRuntime(t)
	url := srv.URL
	srv.Close()

	_, _, err := run(t, "status", "--config", cfgPath, "--url", url)
	require.Error(t, err)

	var connErr *status.ConnectionError
	assert.ErrorAs(t, err, &connErr)
	assert.Equal(t, ExitNetworkError, ExitCode(err))
}

// =============================================================================
// LOAD / UNLOAD
// =============================================================================

func TestLoad_UsesChatEndpointAndPinsModel(t *testing.T) {
	cfgPath := isolate(t)
	f, srv := newFakeRuntime(t, "llama3:8b")

	out, _, err := run(t, "load", "llama3:8b", "--config", cfgPath, "--url", srv.URL)
	require.NoError(t, err)

	require.Len(t, f.requests, 1)
	assert.Equal(t, "/api/chat", f.requests[0].Path)
	assert.Equal(t, "-1", string(f.requests[0].KeepAlive))

	assert.Contains(t, out, "Preparing request to load 'llama3:8b'...")
	assert.Contains(t, out, "/api/chat")
	assert.Contains(t, out, "Permanent", "the new state is shown after the request")
}

func TestUnload_UsesGenerateForOtherModels(t *testing.T) {
	cfgPath := isolate(t)
	f, srv := newFakeRuntime(t, "nomic-embed-text")
	f.loaded["nomic-embed-text"] = "2318-01-01T00:00:00Z"

	out, _, err := run(t, "unload", "nomic-embed-text", "--config", cfgPath, "--url", srv.URL)
	require.NoError(t, err)

	require.Len(t, f.requests, 1)
	assert.Equal(t, "/api/generate", f.requests[0].Path)
	assert.Equal(t, `"1s"`, string(f.requests[0].KeepAlive))
	assert.Contains(t, out, "Not Loaded")
}

func TestLoad_RequiresExactlyOneModel(t *testing.T) {
	cfgPath := isolate(t)
	_, _, err := run(t, "load", "--config", cfgPath)
	assert.Error(t, err)
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfig_SetThenGet(t *testing.T) {
	cfgPath := isolate(t)

	out, _, err := run(t, "config", "set", "residency.chat_keywords", "mistral, qwen", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "residency.chat_keywords = mistral,qwen")

	out, _, err = run(t, "config", "get", "residency.chat_keywords", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "mistral,qwen\n", out)

	// Earlier settings in the file survive the edit.
	cfg, err := config.LoadFromPath(cfgPath)
	require.NoError(t, err)
	assert.False(t, cfg.Logging.FileOutput)
}

func TestConfig_SetRejectsInvalidValue(t *testing.T) {
	cfgPath := isolate(t)
	before, err := os.ReadFile(cfgPath)
	require.NoError(t, err)

	_, _, err = run(t, "config", "set", "ui.theme", "neon", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))

	after, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, before, after, "file untouched")
}

func TestConfig_ShowIncludesFlagOverrides(t *testing.T) {
	cfgPath := isolate(t)

	out, _, err := run(t, "config", "--config", cfgPath, "--url", "http://gpu-box:11434")
	require.NoError(t, err)
	assert.Contains(t, out, `ollama.url = "http://gpu-box:11434"`)
	assert.Contains(t, out, "residency.settle_delay_ms = 0")
}

func TestConfig_Path(t *testing.T) {
	cfgPath := isolate(t)
	out, _, err := run(t, "config", "path", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", out)
}

// =============================================================================
// VERSION AND ERRORS
// =============================================================================

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	if !strings.HasPrefix(out, "keeper "+Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"no model", residency.ErrNoModel, ExitUsageError},
		{"validation", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "ui.theme"}}), ExitConfigError},
		{"not running", &status.ConnectionError{Op: "list", Cause: ollama.ErrNotRunning}, ExitNetworkError},
		{"timeout", &residency.APIError{Model: "m", Cause: ollama.ErrTimeout}, ExitTimeoutError},
		{"not found", &residency.APIError{Model: "m", Cause: ollama.ErrModelNotFound}, ExitNotFoundError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDisplayError_IncludesHint(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, &status.ConnectionError{Op: "list", Cause: ollama.ErrNotRunning})

	out := buf.String()
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "ollama serve")
}

func TestSleepContext(t *testing.T) {
	start := time.Now()
	require.NoError(t, sleepContext(t.Context(), 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
