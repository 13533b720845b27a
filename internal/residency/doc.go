// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package residency changes how long a model stays resident in the Ollama
// runtime.
//
// Ollama has no dedicated "load" or "unload" endpoint. A model is loaded by
// sending it a minimal inference request and the request's keep_alive field
// decides how long it stays in memory afterwards. Chat-tuned models are sent
// a one-message /api/chat request; everything else gets a /api/generate
// prompt.
//
// # Key Types
//
//   - Classifier: decides the request style from the model name
//   - Dispatcher: sends the request and reports a Result or an APIError
//
// # Usage
//
//	d := residency.NewDispatcher(client, residency.NewClassifier(nil), logger)
//	res, err := d.Apply(ctx, "llama3:8b", ollama.KeepForever)
package residency
