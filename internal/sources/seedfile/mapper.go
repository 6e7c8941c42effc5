package seedfile

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/toolhub/toolhub/internal/domain"
)

// Mapper converts seed entries to domain.Tool records.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapTools converts a SeedConfig to domain tools. Entries without a
// name or a parseable URL are skipped; a missing id is derived from
// the name so re-imports stay stable.
func (m *Mapper) MapTools(config SeedConfig) ([]domain.Tool, error) {
	tools := make([]domain.Tool, 0, len(config.Tools))

	for _, entry := range config.Tools {
		if entry.Name == "" || entry.URL == "" {
			continue
		}
		if _, err := url.Parse(entry.URL); err != nil {
			continue
		}

		category := domain.CategoryID(entry.Category)
		if !domain.ValidCategory(category) {
			category = domain.DefaultCategory
		}

		id := entry.ID
		if id == "" {
			id = deriveID(entry.Name)
		}

		icon := entry.IconURL
		if icon == "" {
			icon = domain.FaviconURL(entry.URL)
		}

		tags := entry.Tags
		if tags == nil {
			tags = []string{}
		}

		tools = append(tools, domain.Tool{
			ID:            id,
			Name:          entry.Name,
			Description:   entry.Description,
			DescriptionZh: entry.DescriptionZh,
			Category:      category,
			URL:           entry.URL,
			IconURL:       icon,
			Tags:          tags,
			IsFeatured:    entry.IsFeatured,
		})
	}

	if len(tools) == 0 && len(config.Tools) > 0 {
		return nil, fmt.Errorf("seed file contained %d entries but none were usable", len(config.Tools))
	}

	return tools, nil
}

// deriveID builds a stable id from a seeded tool name.
// Example: "Notion AI" -> "seed-notion-ai"
func deriveID(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return "seed-" + slug
}
