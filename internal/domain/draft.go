package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Draft is an editor-local, uncommitted copy of a tool being created
// or modified. A partially-formed draft never crosses the store
// boundary: Commit is the only way to turn one into a Tool.
type Draft struct {
	ID            string
	Name          string
	Description   string
	DescriptionZh string
	Category      CategoryID
	URL           string
	IconURL       string
	Tags          []string
	IsFeatured    bool
}

// ValidationError reports a draft field that blocks the commit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid draft: %s %s", e.Field, e.Reason)
}

// NewDraft returns a fresh draft for a new tool: generated id, empty
// required fields, default category. The id is derived from a
// millisecond timestamp, matching the catalog's id scheme.
func NewDraft(now time.Time) Draft {
	return Draft{
		ID:       strconv.FormatInt(now.UnixMilli(), 10),
		Category: DefaultCategory,
		Tags:     []string{},
	}
}

// DraftOf returns a draft copying an existing record. Edits to the
// draft must not mutate the catalog until committed.
func DraftOf(t Tool) Draft {
	c := t.Clone()
	return Draft{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		DescriptionZh: c.DescriptionZh,
		Category:      c.Category,
		URL:           c.URL,
		IconURL:       c.IconURL,
		Tags:          c.Tags,
		IsFeatured:    c.IsFeatured,
	}
}

// BestDescription picks the icon-generation prompt text: English
// description, then Chinese, then the name itself.
func (d Draft) BestDescription() string {
	switch {
	case d.Description != "":
		return d.Description
	case d.DescriptionZh != "":
		return d.DescriptionZh
	default:
		return d.Name
	}
}

// Commit validates the draft and produces a well-formed Tool.
// ID and Name are required; a missing category falls back to the
// default; a blank icon is synthesized from the URL.
func (d Draft) Commit() (Tool, error) {
	if d.ID == "" {
		return Tool{}, &ValidationError{Field: "id", Reason: "is required"}
	}
	if d.Name == "" {
		return Tool{}, &ValidationError{Field: "name", Reason: "is required"}
	}
	category := d.Category
	if category == "" {
		category = DefaultCategory
	}
	if !ValidCategory(category) {
		return Tool{}, &ValidationError{Field: "category", Reason: fmt.Sprintf("%q is not a known category", category)}
	}

	icon := d.IconURL
	if icon == "" {
		icon = FaviconURL(d.URL)
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	t := Tool{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		DescriptionZh: d.DescriptionZh,
		Category:      category,
		URL:           d.URL,
		IconURL:       icon,
		Tags:          tags,
		IsFeatured:    d.IsFeatured,
	}
	return t.Clone(), nil
}

// faviconFallbackHost keeps the derivation deterministic when the
// draft has no URL to derive from.
const faviconFallbackHost = "google.com"

// FaviconURL derives a favicon-style icon URL from a tool URL.
func FaviconURL(rawURL string) string {
	host := faviconFallbackHost
	if rawURL != "" {
		if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
			host = u.Hostname()
		} else {
			host = rawURL
		}
	}
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=128", host)
}
