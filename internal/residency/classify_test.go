// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package residency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_DefaultKeywords(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		model string
		want  Style
	}{
		{"llama3:8b", StyleChat},
		{"codellama:7b", StyleChat},
		{"Mixtral-8x7B", StyleChat},
		{"GEMMA2:2b", StyleChat},
		{"phi3:mini", StyleChat},
		{"qwen2.5-coder:14b", StyleChat},
		{"nomic-embed-text", StyleCompletion},
		{"mistral:7b", StyleCompletion},
		{"phi:2.7b", StyleCompletion},
		{"", StyleCompletion},
	}

	for _, tc := range tests {
		t.Run(tc.model, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.model))
		})
	}
}

func TestClassify_CustomKeywords(t *testing.T) {
	c := NewClassifier([]string{" Mistral ", "", "DeepSeek"})

	assert.Equal(t, []string{"mistral", "deepseek"}, c.Keywords())
	assert.Equal(t, StyleChat, c.Classify("mistral:7b"))
	assert.Equal(t, StyleChat, c.Classify("deepseek-r1:14b"))
	assert.Equal(t, StyleCompletion, c.Classify("llama3"), "custom list replaces the defaults")
}

func TestStyle_Endpoint(t *testing.T) {
	assert.Equal(t, "/api/chat", StyleChat.Endpoint())
	assert.Equal(t, "/api/generate", StyleCompletion.Endpoint())
	assert.Equal(t, "chat", StyleChat.String())
	assert.Equal(t, "completion", StyleCompletion.String())
}
