package seedfile

// SeedConfig is the top-level structure of seed.yaml: a flat list of
// tool entries.
type SeedConfig struct {
	Tools []ToolEntry `yaml:"tools"`
}

// ToolEntry contains the raw properties of one seeded tool.
type ToolEntry struct {
	ID            string   `yaml:"id,omitempty"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description,omitempty"`
	DescriptionZh string   `yaml:"descriptionZh,omitempty"`
	Category      string   `yaml:"category,omitempty"`
	URL           string   `yaml:"url"`
	IconURL       string   `yaml:"iconUrl,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
	IsFeatured    bool     `yaml:"isFeatured,omitempty"`
}
