// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for keeper.
//
// Configuration is a single TOML file with sensible defaults, environment
// variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - OllamaConfig: Where the runtime lives and how long to wait for it
//   - ResidencyConfig: Chat keywords and the keep_alive values sent
//   - UIConfig, LoggingConfig: Presentation and log file settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags
//   - Environment variables (KEEPER_*, OLLAMA_HOST)
//   - ~/.keeper/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.LoadFromPath(path)
//	if err != nil {
//	    return err
//	}
//	client := ollama.NewClientWithConfig(cfg.ClientConfig())
//
// Watch reloads the file when it changes on disk.
package config
