package domain

// Tool represents the canonical record of a catalog entry.
//
// It is NOT tied to Redis, the seed file or any external source.
// All inputs (seed file, persistence, admin edits) are merged into
// this structure.
//
// A Tool is uniquely identified by its ID. Uniqueness is enforced by
// last-writer-replace semantics at save time: committing a draft whose
// ID already exists replaces that record in place.
type Tool struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Generated at creation time from a millisecond timestamp;
	// never reassigned.
	ID string `json:"id" yaml:"id"`

	// ─────────────────────────────
	// Functional description
	// ─────────────────────────────

	// Name is the display name. Required.
	// Example: "Midjourney"
	Name string `json:"name" yaml:"name"`

	// Description is the English summary.
	Description string `json:"description" yaml:"description"`

	// DescriptionZh is the Chinese summary. Both descriptions are
	// required by the editor but rendering falls back to whichever
	// is present.
	DescriptionZh string `json:"descriptionZh,omitempty" yaml:"descriptionZh,omitempty"`

	// Category the tool belongs to. Exactly one, from the fixed set.
	Category CategoryID `json:"category" yaml:"category"`

	// URL is the absolute outbound link. Also seeds the favicon
	// derivation when no icon is set.
	URL string `json:"url" yaml:"url"`

	// IconURL is either a remote image URL or an inline base64 data
	// URL produced by icon generation. Synthesized from URL at save
	// time when left blank.
	IconURL string `json:"iconUrl" yaml:"iconUrl"`

	// Tags are free-text labels, order preserved, duplicates allowed.
	Tags []string `json:"tags" yaml:"tags"`

	// IsFeatured marks the tool with a badge. Presentational only.
	IsFeatured bool `json:"isFeatured,omitempty" yaml:"isFeatured,omitempty"`
}

// Clone returns a deep copy of the tool. Drafts operate on copies so
// edits never reach the catalog before commit.
func (t Tool) Clone() Tool {
	c := t
	if t.Tags != nil {
		c.Tags = make([]string, len(t.Tags))
		copy(c.Tags, t.Tags)
	}
	return c
}

// CloneCatalog deep-copies a full catalog sequence.
func CloneCatalog(tools []Tool) []Tool {
	out := make([]Tool, len(tools))
	for i, t := range tools {
		out[i] = t.Clone()
	}
	return out
}
