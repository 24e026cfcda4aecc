package markdown

import "fmt"

// Config configures Markdown to tree conversion.
type Config struct {
	// HeadingOffset is added to every heading level before clamping.
	HeadingOffset int `json:"headingOffset,omitempty" yaml:"heading_offset,omitempty"`
	// JoinSoftBreaks turns soft line breaks into spaces instead of newlines.
	JoinSoftBreaks bool `json:"joinSoftBreaks,omitempty" yaml:"join_soft_breaks,omitempty"`
	// LanguageMap renames fenced code languages before they are stored on pre nodes.
	LanguageMap map[string]string `json:"languageMap,omitempty" yaml:"language_map,omitempty"`
	// Partial marks produced trees as fragments.
	Partial bool `json:"partial,omitempty" yaml:"partial,omitempty"`
}

func (c Config) clone() Config {
	cloned := c
	if c.LanguageMap != nil {
		cloned.LanguageMap = make(map[string]string, len(c.LanguageMap))
		for from, to := range c.LanguageMap {
			cloned.LanguageMap[from] = to
		}
	}
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.HeadingOffset < -4 || c.HeadingOffset > 4 {
		return fmt.Errorf("headingOffset must be between -4 and 4, got %d", c.HeadingOffset)
	}
	for from, to := range c.LanguageMap {
		if from == "" || to == "" {
			return fmt.Errorf("languageMap keys and values must be non-empty")
		}
	}
	return nil
}
