package domain

// CategoryID identifies one of the fixed categories.
type CategoryID string

const (
	CategoryAll          CategoryID = "all" // browsing pseudo-category, never stored on a record
	CategoryText         CategoryID = "text"
	CategoryImage        CategoryID = "image"
	CategoryVideo        CategoryID = "video"
	CategoryAudio        CategoryID = "audio"
	CategoryCode         CategoryID = "code"
	CategoryDesign       CategoryID = "design"
	CategoryMarketing    CategoryID = "marketing"
	CategoryProductivity CategoryID = "productivity"
)

// DefaultCategory is assigned to fresh drafts.
const DefaultCategory = CategoryProductivity

// Category is static configuration for one category: stable id,
// bilingual labels and an icon reference. Not persisted state.
type Category struct {
	ID      CategoryID `json:"id"`
	Label   string     `json:"label"`
	LabelZh string     `json:"labelZh"`
	Icon    string     `json:"icon"`
}

// categories is the closed set, in browsing order.
var categories = []Category{
	{ID: CategoryAll, Label: "All Tools", LabelZh: "全部工具", Icon: "layout-grid"},
	{ID: CategoryText, Label: "AI Writing", LabelZh: "AI 写作", Icon: "type"},
	{ID: CategoryImage, Label: "AI Image", LabelZh: "AI 绘画", Icon: "image"},
	{ID: CategoryVideo, Label: "AI Video", LabelZh: "AI 视频", Icon: "video"},
	{ID: CategoryAudio, Label: "AI Audio", LabelZh: "AI 音频", Icon: "mic"},
	{ID: CategoryCode, Label: "AI Coding", LabelZh: "AI 编程", Icon: "code"},
	{ID: CategoryDesign, Label: "AI Design", LabelZh: "AI 设计", Icon: "pen-tool"},
	{ID: CategoryMarketing, Label: "Marketing", LabelZh: "营销", Icon: "megaphone"},
	{ID: CategoryProductivity, Label: "Office", LabelZh: "办公效率", Icon: "briefcase"},
}

// Categories returns the full fixed set, including the "all"
// pseudo-category, in browsing order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory returns the static configuration for an id.
func LookupCategory(id CategoryID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ValidCategory reports whether id names a storable category.
// The "all" pseudo-category is for browsing only.
func ValidCategory(id CategoryID) bool {
	if id == CategoryAll {
		return false
	}
	_, ok := LookupCategory(id)
	return ok
}
