package domain

import "strings"

// SearchMode selects how a query is resolved.
type SearchMode string

const (
	// SearchModePlain matches the query locally as a substring.
	SearchModePlain SearchMode = "plain"
	// SearchModeAssisted delegates query interpretation to the AI endpoint.
	SearchModeAssisted SearchMode = "assisted"
)

// NormalizeQuery trims and lowercases raw user input.
func NormalizeQuery(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// ResolvePlain returns the subsequence of catalog whose name, either
// description, or any tag contains the query case-insensitively.
// Relative catalog order is preserved.
//
// Callers must not invoke this with an empty query: an empty query
// means no search is active and the full browsing view applies.
func ResolvePlain(query string, catalog []Tool) []Tool {
	q := NormalizeQuery(query)
	if q == "" {
		return nil
	}

	matches := make([]Tool, 0, 8)
	for _, t := range catalog {
		if matchesQuery(t, q) {
			matches = append(matches, t)
		}
	}
	return matches
}

func matchesQuery(t Tool, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	// Chinese descriptions have no case to fold but the query may mix scripts.
	if t.DescriptionZh != "" && strings.Contains(strings.ToLower(t.DescriptionZh), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// FilterByIDs returns catalog members whose id is in ids, preserving
// catalog order (not the order ids were returned in).
func FilterByIDs(ids []string, catalog []Tool) []Tool {
	if len(ids) == 0 {
		return []Tool{}
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	matches := make([]Tool, 0, len(ids))
	for _, t := range catalog {
		if _, ok := wanted[t.ID]; ok {
			matches = append(matches, t)
		}
	}
	return matches
}

// ToolProjection is the reduced view of a record sent to the AI
// endpoints, bounding payload size.
type ToolProjection struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Category    CategoryID `json:"category"`
}

// Project maps a catalog to its reduced projection.
func Project(catalog []Tool) []ToolProjection {
	out := make([]ToolProjection, 0, len(catalog))
	for _, t := range catalog {
		desc := t.Description
		if desc == "" {
			desc = t.DescriptionZh
		}
		out = append(out, ToolProjection{
			ID:          t.ID,
			Name:        t.Name,
			Description: desc,
			Tags:        t.Tags,
			Category:    t.Category,
		})
	}
	return out
}
