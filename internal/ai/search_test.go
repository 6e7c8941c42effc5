package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/logger"
)

// fakeModel returns a canned response or error from GenerateContent.
type fakeModel struct {
	content string
	err     error
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.content}},
	}, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return f.content, f.err
}

func searchCatalog() []domain.Tool {
	return []domain.Tool{
		{ID: "a", Name: "ChatGPT", Category: domain.CategoryText},
		{ID: "b", Name: "Midjourney", Category: domain.CategoryImage},
	}
}

func TestResolveAssisted(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		err        error
		wantIDs    []string
		wantFailed bool
	}{
		{
			name:    "clean json",
			content: `{"toolIds":["b"]}`,
			wantIDs: []string{"b"},
		},
		{
			name:    "fenced json",
			content: "```json\n{\"toolIds\":[\"a\",\"b\"]}\n```",
			wantIDs: []string{"a", "b"},
		},
		{
			name:    "absent toolIds field is zero matches, not a failure",
			content: `{}`,
			wantIDs: []string{},
		},
		{
			name:       "generation error",
			err:        errors.New("quota exceeded"),
			wantIDs:    []string{},
			wantFailed: true,
		},
		{
			name:       "undecodable response",
			content:    "sorry, here are some tools you might like",
			wantIDs:    []string{},
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewWithModel(&fakeModel{content: tt.content, err: tt.err}, logger.New("error", false))

			outcome := client.ResolveAssisted(context.Background(), "art", searchCatalog())

			if outcome.Failed != tt.wantFailed {
				t.Errorf("Failed = %v, want %v", outcome.Failed, tt.wantFailed)
			}
			if outcome.ToolIDs == nil {
				t.Fatal("ToolIDs must never be nil")
			}
			if len(outcome.ToolIDs) != len(tt.wantIDs) {
				t.Fatalf("ToolIDs = %v, want %v", outcome.ToolIDs, tt.wantIDs)
			}
			for i, id := range tt.wantIDs {
				if outcome.ToolIDs[i] != id {
					t.Errorf("ToolIDs[%d] = %s, want %s", i, outcome.ToolIDs[i], id)
				}
			}
		})
	}
}

func TestResolveAssistedDisabled(t *testing.T) {
	client := NewWithModel(nil, logger.New("error", false))

	outcome := client.ResolveAssisted(context.Background(), "art", searchCatalog())
	if !outcome.Failed {
		t.Error("disabled client must report a failed outcome")
	}
	if len(outcome.ToolIDs) != 0 {
		t.Errorf("ToolIDs = %v, want empty", outcome.ToolIDs)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.input); got != tt.expected {
				t.Errorf("stripFences(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
