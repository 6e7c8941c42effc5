package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewDraft(t *testing.T) {
	now := time.UnixMilli(1717171717171)
	d := NewDraft(now)

	if d.ID != "1717171717171" {
		t.Errorf("ID = %q, want millisecond timestamp", d.ID)
	}
	if d.Category != DefaultCategory {
		t.Errorf("Category = %s, want %s", d.Category, DefaultCategory)
	}
	if d.Name != "" || d.URL != "" {
		t.Error("fresh draft must have empty required fields")
	}
	if d.Tags == nil {
		t.Error("Tags must be initialized empty, not nil")
	}
}

func TestDraftOfIsACopy(t *testing.T) {
	tool := Tool{
		ID:       "x",
		Name:     "Original",
		Category: CategoryText,
		Tags:     []string{"one"},
	}

	d := DraftOf(tool)
	d.Name = "Edited"
	d.Tags[0] = "mutated"

	if tool.Name != "Original" {
		t.Error("editing the draft mutated the source name")
	}
	if tool.Tags[0] != "one" {
		t.Error("editing draft tags mutated the source slice")
	}
}

func TestDraftCommitValidation(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		wantField string
	}{
		{
			name:      "missing id",
			draft:     Draft{Name: "Tool"},
			wantField: "id",
		},
		{
			name:      "missing name",
			draft:     Draft{ID: "1"},
			wantField: "name",
		},
		{
			name:      "unknown category",
			draft:     Draft{ID: "1", Name: "Tool", Category: "nonsense"},
			wantField: "category",
		},
		{
			name:      "all pseudo-category is not storable",
			draft:     Draft{ID: "1", Name: "Tool", Category: CategoryAll},
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.draft.Commit()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Commit() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %s, want %s", verr.Field, tt.wantField)
			}
		})
	}
}

func TestDraftCommitDefaults(t *testing.T) {
	d := Draft{
		ID:   "42",
		Name: "Example",
		URL:  "https://app.example.com/path",
	}

	tool, err := d.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if tool.Category != DefaultCategory {
		t.Errorf("Category = %s, want default", tool.Category)
	}
	if tool.IconURL != "https://www.google.com/s2/favicons?domain=app.example.com&sz=128" {
		t.Errorf("IconURL = %q, want derived favicon", tool.IconURL)
	}
	if tool.Tags == nil {
		t.Error("Tags must be non-nil after commit")
	}
}

func TestDraftCommitKeepsExplicitIcon(t *testing.T) {
	d := Draft{
		ID:      "42",
		Name:    "Example",
		IconURL: "data:image/png;base64,abc",
	}
	tool, err := d.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if tool.IconURL != "data:image/png;base64,abc" {
		t.Errorf("IconURL = %q, explicit icon must win", tool.IconURL)
	}
}

func TestBestDescription(t *testing.T) {
	tests := []struct {
		name     string
		draft    Draft
		expected string
	}{
		{
			name:     "english first",
			draft:    Draft{Name: "N", Description: "en", DescriptionZh: "zh"},
			expected: "en",
		},
		{
			name:     "chinese fallback",
			draft:    Draft{Name: "N", DescriptionZh: "zh"},
			expected: "zh",
		},
		{
			name:     "name as last resort",
			draft:    Draft{Name: "N"},
			expected: "N",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.BestDescription(); got != tt.expected {
				t.Errorf("BestDescription() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFaviconURL(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected string
	}{
		{
			name:     "full url",
			rawURL:   "https://chat.openai.com/chat",
			expected: "https://www.google.com/s2/favicons?domain=chat.openai.com&sz=128",
		},
		{
			name:     "empty url falls back",
			rawURL:   "",
			expected: "https://www.google.com/s2/favicons?domain=google.com&sz=128",
		},
		{
			name:     "bare host",
			rawURL:   "example.com",
			expected: "https://www.google.com/s2/favicons?domain=example.com&sz=128",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FaviconURL(tt.rawURL); got != tt.expected {
				t.Errorf("FaviconURL(%q) = %q, want %q", tt.rawURL, got, tt.expected)
			}
		})
	}
}
