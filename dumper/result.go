package dumper

// Result holds the output of a dump.
type Result struct {
	Output   string    `json:"output"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes recoverable dump conditions.
type WarningType string

const (
	WarningDocumentType     WarningType = "document_type"
	WarningEquationFallback WarningType = "equation_fallback"
	WarningUnresolvedFile   WarningType = "unresolved_file"
)

// Warning represents a non-fatal issue encountered while dumping.
type Warning struct {
	Type    WarningType `json:"type"`
	NodeTag string      `json:"nodeTag,omitempty"`
	Message string      `json:"message"`
}
