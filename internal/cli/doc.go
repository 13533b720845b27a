// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements keeper's command line.
//
// Running keeper with no subcommand starts the interactive model list. The
// one-shot commands share its configuration and runtime client:
//
//	keeper                    interactive list (l load, u unload, r refresh)
//	keeper status             print every model's residency once
//	keeper load <model>       pin a model in memory
//	keeper unload <model>     evict a model
//	keeper config [...]       show, get, set, reset, path
//	keeper version
//
// Persistent flags --config, --url and --log-level override the config file
// and environment.
package cli
