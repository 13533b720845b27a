// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package residency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/keeper/internal/ollama"
)

// SettleDelay is how long to wait after a successful residency change before
// asking the runtime for fresh status.
const SettleDelay = 500 * time.Millisecond

const (
	chatPrompt     = "hello"
	generatePrompt = "Hello"
)

// ErrNoModel is returned by Apply when the model name is empty.
var ErrNoModel = errors.New("no model selected")

// Runtime is the part of the Ollama client the dispatcher needs.
type Runtime interface {
	Chat(ctx context.Context, req ollama.ChatRequest) (*ollama.ChatResponse, error)
	Generate(ctx context.Context, req ollama.GenerateRequest) (*ollama.GenerateResponse, error)
}

// APIError reports a failed residency request.
type APIError struct {
	Model    string
	Endpoint string
	Cause    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("residency request for %q via %s failed: %v", e.Model, e.Endpoint, e.Cause)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Result describes a residency request the runtime accepted.
type Result struct {
	RequestID string
	Model     string
	Style     Style
	Endpoint  string
	KeepAlive ollama.KeepAlive
	LoadTime  time.Duration
	Elapsed   time.Duration
}

// Dispatcher sends residency requests. It does not serialize them; concurrent
// Apply calls for the same model race at the runtime.
type Dispatcher struct {
	runtime    Runtime
	classifier *Classifier
	logger     *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil classifier uses the default
// keywords and a nil logger discards output.
func NewDispatcher(rt Runtime, classifier *Classifier, logger *slog.Logger) *Dispatcher {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{runtime: rt, classifier: classifier, logger: logger}
}

// Classifier returns the classifier in use.
func (d *Dispatcher) Classifier() *Classifier {
	return d.classifier
}

// WithClassifier returns a copy of the dispatcher using c.
func (d *Dispatcher) WithClassifier(c *Classifier) *Dispatcher {
	cp := *d
	if c != nil {
		cp.classifier = c
	}
	return &cp
}

// Apply sends one minimal inference request for model carrying keepAlive.
// It is attempted exactly once.
func (d *Dispatcher) Apply(ctx context.Context, model string, keepAlive ollama.KeepAlive) (Result, error) {
	if model == "" {
		return Result{}, ErrNoModel
	}

	style := d.classifier.Classify(model)
	res := Result{
		RequestID: uuid.NewString(),
		Model:     model,
		Style:     style,
		Endpoint:  style.Endpoint(),
		KeepAlive: keepAlive,
	}
	log := d.logger.With(
		"request_id", res.RequestID,
		"model", model,
		"endpoint", res.Endpoint,
		"keep_alive", keepAlive.String(),
	)
	log.Debug("sending residency request")

	start := time.Now()
	var err error
	switch style {
	case StyleChat:
		var resp *ollama.ChatResponse
		resp, err = d.runtime.Chat(ctx, ollama.ChatRequest{
			Model:     model,
			Messages:  []ollama.Message{ollama.NewUserMessage(chatPrompt)},
			KeepAlive: &keepAlive,
		})
		if resp != nil {
			res.LoadTime = resp.LoadTime()
		}
	default:
		var resp *ollama.GenerateResponse
		resp, err = d.runtime.Generate(ctx, ollama.GenerateRequest{
			Model:     model,
			Prompt:    generatePrompt,
			KeepAlive: &keepAlive,
		})
		if resp != nil {
			res.LoadTime = resp.LoadTime()
		}
	}
	res.Elapsed = time.Since(start)

	if err != nil {
		log.Error("residency request failed", "elapsed", res.Elapsed, "error", err)
		return res, &APIError{Model: model, Endpoint: res.Endpoint, Cause: err}
	}

	log.Info("residency request applied", "elapsed", res.Elapsed, "load_time", res.LoadTime)
	return res, nil
}
