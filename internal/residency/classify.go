// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package residency

import (
	"strings"

	"golang.org/x/text/cases"
)

// ============================================================================
// REQUEST STYLE
// ============================================================================

// Style is the kind of inference request used to touch a model.
type Style int

const (
	// StyleCompletion sends a prompt to /api/generate.
	StyleCompletion Style = iota
	// StyleChat sends a single user message to /api/chat.
	StyleChat
)

// String returns the human-readable name of the style.
func (s Style) String() string {
	switch s {
	case StyleChat:
		return "chat"
	case StyleCompletion:
		return "completion"
	default:
		return "unknown"
	}
}

// Endpoint returns the API path used for the style.
func (s Style) Endpoint() string {
	if s == StyleChat {
		return "/api/chat"
	}
	return "/api/generate"
}

// ============================================================================
// CLASSIFIER
// ============================================================================

// DefaultChatKeywords lists the model families treated as chat models.
var DefaultChatKeywords = []string{"llama", "mixtral", "gemma", "phi3", "qwen", "codellama"}

// Classifier picks a request style from a model name by keyword.
// A Classifier is immutable and safe for concurrent use.
type Classifier struct {
	keywords []string
}

// NewClassifier builds a classifier. A nil or empty keyword list falls back
// to DefaultChatKeywords; blank entries are ignored.
func NewClassifier(keywords []string) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultChatKeywords
	}
	fold := cases.Fold()
	c := &Classifier{}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		c.keywords = append(c.keywords, fold.String(kw))
	}
	return c
}

// Keywords returns the case-folded keyword list.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// Classify returns StyleChat when the case-folded model name contains any
// keyword, StyleCompletion otherwise.
func (c *Classifier) Classify(model string) Style {
	// Casers carry state, so each call gets its own.
	name := cases.Fold().String(model)
	for _, kw := range c.keywords {
		if strings.Contains(name, kw) {
			return StyleChat
		}
	}
	return StyleCompletion
}
