// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/keeper/internal/ollama"
	"github.com/jeranaias/keeper/internal/residency"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete keeper configuration.
type Config struct {
	Ollama    OllamaConfig    `toml:"ollama"`
	Residency ResidencyConfig `toml:"residency"`
	UI        UIConfig        `toml:"ui"`
	Logging   LoggingConfig   `toml:"logging"`
}

// OllamaConfig describes how to reach the runtime.
type OllamaConfig struct {
	// URL is the API base URL.
	URL string `toml:"url"`

	// RequestTimeoutSecs bounds the listing calls. Zero means no timeout.
	RequestTimeoutSecs int `toml:"request_timeout_secs"`

	// KeepAliveTimeoutSecs bounds load/unload requests, which may have to
	// read a whole model from disk.
	KeepAliveTimeoutSecs int `toml:"keep_alive_timeout_secs"`
}

// ResidencyConfig controls load and unload requests.
type ResidencyConfig struct {
	ChatKeywords    []string `toml:"chat_keywords"`
	LoadKeepAlive   string   `toml:"load_keep_alive"`
	UnloadKeepAlive string   `toml:"unload_keep_alive"`
	SettleDelayMs   int      `toml:"settle_delay_ms"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	Theme     string `toml:"theme"` // dark, light, auto
	NameWidth int    `toml:"name_width"`
	AltScreen bool   `toml:"alt_screen"`
}

// LoggingConfig contains log file settings.
type LoggingConfig struct {
	Level      string `toml:"level"`
	Dir        string `toml:"dir"` // empty means <config dir>/logs
	FileOutput bool   `toml:"file_output"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	keywords := make([]string, len(residency.DefaultChatKeywords))
	copy(keywords, residency.DefaultChatKeywords)

	return &Config{
		Ollama: OllamaConfig{
			URL:                  ollama.DefaultBaseURL,
			RequestTimeoutSecs:   0,
			KeepAliveTimeoutSecs: int(ollama.DefaultKeepAliveTimeout / time.Second),
		},
		Residency: ResidencyConfig{
			ChatKeywords:    keywords,
			LoadKeepAlive:   "-1",
			UnloadKeepAlive: "1s",
			SettleDelayMs:   500,
		},
		UI: UIConfig{
			Theme:     "auto",
			NameWidth: 35,
			AltScreen: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			FileOutput: true,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the keeper configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".keeper"), nil
}

// ConfigPath returns the path to the default config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogDir returns the directory log files are written to.
func (c *Config) LogDir() (string, error) {
	if c.Logging.Dir != "" {
		return c.Logging.Dir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default path. A missing file yields the
// defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. A missing file is not an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep the
// values already in cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults replaces zero values that have no meaning with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Ollama.URL == "" {
		cfg.Ollama.URL = defaults.Ollama.URL
	}
	if cfg.Ollama.KeepAliveTimeoutSecs == 0 {
		cfg.Ollama.KeepAliveTimeoutSecs = defaults.Ollama.KeepAliveTimeoutSecs
	}

	if len(cfg.Residency.ChatKeywords) == 0 {
		cfg.Residency.ChatKeywords = defaults.Residency.ChatKeywords
	}
	if cfg.Residency.LoadKeepAlive == "" {
		cfg.Residency.LoadKeepAlive = defaults.Residency.LoadKeepAlive
	}
	if cfg.Residency.UnloadKeepAlive == "" {
		cfg.Residency.UnloadKeepAlive = defaults.Residency.UnloadKeepAlive
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.NameWidth == 0 {
		cfg.UI.NameWidth = defaults.UI.NameWidth
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to path as TOML. The file is replaced
// atomically and created with 0600 permissions.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := tmp.Chmod(0o600); err != nil {
		cleanup()
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(tmp, "# keeper configuration file")
	fmt.Fprintln(tmp, "")
	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		cleanup()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Ollama
	if u, err := url.Parse(c.Ollama.URL); err != nil {
		add("ollama.url", "invalid URL: %v", err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		add("ollama.url", "scheme must be http or https, got '%s'", u.Scheme)
	} else if u.Host == "" {
		add("ollama.url", "missing host")
	}
	if c.Ollama.RequestTimeoutSecs < 0 {
		add("ollama.request_timeout_secs", "must not be negative")
	}
	if c.Ollama.KeepAliveTimeoutSecs <= 0 {
		add("ollama.keep_alive_timeout_secs", "must be positive")
	}

	// Residency
	if _, err := ollama.ParseKeepAlive(c.Residency.LoadKeepAlive); err != nil {
		add("residency.load_keep_alive", "%v", err)
	}
	if _, err := ollama.ParseKeepAlive(c.Residency.UnloadKeepAlive); err != nil {
		add("residency.unload_keep_alive", "%v", err)
	}
	if c.Residency.SettleDelayMs < 0 {
		add("residency.settle_delay_ms", "must not be negative")
	}

	// UI
	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme)
	}
	if c.UI.NameWidth <= 0 {
		add("ui.name_width", "must be positive")
	}

	// Logging
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		add("logging", "rotation limits must not be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// ClientConfig returns the Ollama client settings.
func (c *Config) ClientConfig() *ollama.ClientConfig {
	return &ollama.ClientConfig{
		BaseURL:          c.Ollama.URL,
		Timeout:          time.Duration(c.Ollama.RequestTimeoutSecs) * time.Second,
		KeepAliveTimeout: time.Duration(c.Ollama.KeepAliveTimeoutSecs) * time.Second,
	}
}

// LoadKeepAlive returns the keep_alive value sent when loading a model.
func (c *Config) LoadKeepAlive() ollama.KeepAlive {
	if ka, err := ollama.ParseKeepAlive(c.Residency.LoadKeepAlive); err == nil {
		return ka
	}
	return ollama.KeepForever
}

// UnloadKeepAlive returns the keep_alive value sent when unloading a model.
func (c *Config) UnloadKeepAlive() ollama.KeepAlive {
	if ka, err := ollama.ParseKeepAlive(c.Residency.UnloadKeepAlive); err == nil {
		return ka
	}
	return ollama.UnloadNow
}

// SettleDelay returns the pause between a residency change and the refresh
// that follows it.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Residency.SettleDelayMs) * time.Millisecond
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - KEEPER_OLLAMA_URL: overrides ollama.url
//   - OLLAMA_HOST: host[:port] or URL, used when KEEPER_OLLAMA_URL is unset
//   - KEEPER_LOG_LEVEL: overrides logging.level
//   - KEEPER_CHAT_KEYWORDS: comma-separated list, overrides residency.chat_keywords
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("KEEPER_OLLAMA_URL"); u != "" {
		c.Ollama.URL = u
	} else if host := os.Getenv("OLLAMA_HOST"); host != "" {
		c.Ollama.URL = URLFromHost(host)
	}

	if level := os.Getenv("KEEPER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if kw := os.Getenv("KEEPER_CHAT_KEYWORDS"); kw != "" {
		if list := splitList(kw); len(list) > 0 {
			c.Residency.ChatKeywords = list
		}
	}
}

// URLFromHost converts an OLLAMA_HOST value into a client base URL. The
// server accepts a bare host, host:port or a full URL there; a wildcard bind
// address is dialled on loopback.
func URLFromHost(host string) string {
	host = strings.TrimSpace(host)
	scheme := "http"
	if i := strings.Index(host, "://"); i >= 0 {
		scheme, host = host[:i], host[i+3:]
	}
	host = strings.TrimRight(host, "/")

	h, port, err := net.SplitHostPort(host)
	if err != nil {
		h, port = strings.Trim(host, "[]"), "11434"
	}
	switch h {
	case "", "0.0.0.0", "::":
		h = "127.0.0.1"
	}
	return scheme + "://" + net.JoinHostPort(h, port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using its TOML key in dot notation
// (e.g., "ollama.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type; lists are comma-separated.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("'%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// fieldByTag finds the struct field whose toml tag is name.
func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				return fmt.Errorf("invalid boolean value: %v", err)
			}
			field.SetBool(boolVal)
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				field.Set(reflect.ValueOf(splitList(strVal)))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// Keys returns all configuration keys in dot notation.
func Keys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		prefix := section.Tag.Get("toml")
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, prefix+"."+section.Type.Field(j).Tag.Get("toml"))
		}
	}
	return keys
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Residency.ChatKeywords != nil {
		clone.Residency.ChatKeywords = make([]string, len(c.Residency.ChatKeywords))
		copy(clone.Residency.ChatKeywords, c.Residency.ChatKeywords)
	}
	return &clone
}
