// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for the Ollama control API.
//
// keeper only needs a narrow slice of the API: listing installed models,
// listing resident models with their expiry, and issuing minimal chat or
// generate requests whose only purpose is to carry a keep_alive directive.
//
// # Key Types
//
//   - Client: HTTP client for Ollama API communication
//   - ModelInfo: an installed model as reported by /api/tags
//   - RunningModel: a resident model as reported by /api/ps
//   - KeepAlive: the keep_alive directive (-1 or a duration string)
//   - ClientError: categorized client failure
//
// # Usage
//
//	client := ollama.NewClient()
//	installed, err := client.ListModels(ctx)
//	running, err := client.ListRunningModels(ctx)
//
// Pin a model in memory:
//
//	_, err := client.Chat(ctx, ollama.ChatRequest{
//	    Model:     "llama3",
//	    Messages:  []ollama.Message{ollama.NewUserMessage("Hi")},
//	    KeepAlive: &ollama.KeepForever,
//	})
package ollama
