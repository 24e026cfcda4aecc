package markdown

import "github.com/rgonek/notedump/tree"

// Result holds the output of a Markdown conversion.
type Result struct {
	Tree     *tree.Tree `json:"tree"`
	Warnings []Warning  `json:"warnings,omitempty"`
}

// WarningType categorizes lossy conversion steps.
type WarningType string

const (
	WarningUnknownNode    WarningType = "unknown_node"
	WarningDroppedFeature WarningType = "dropped_feature"
	WarningUnbalancedHTML WarningType = "unbalanced_html"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeKind string      `json:"nodeKind,omitempty"`
	Message  string      `json:"message"`
}
