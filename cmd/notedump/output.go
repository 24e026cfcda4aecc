package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgonek/notedump/dumper"
	"github.com/rgonek/notedump/importer/markdown"
)

// warningLine is a warning from any stage, ready for display.
type warningLine struct {
	Stage   string
	Type    string
	Subject string
	Message string
}

func markdownWarnings(warnings []markdown.Warning) []warningLine {
	lines := make([]warningLine, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, warningLine{Stage: "markdown", Type: string(w.Type), Subject: w.NodeKind, Message: w.Message})
	}
	return lines
}

func dumpWarnings(format dumper.Format, warnings []dumper.Warning) []warningLine {
	lines := make([]warningLine, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, warningLine{Stage: string(format), Type: string(w.Type), Subject: w.NodeTag, Message: w.Message})
	}
	return lines
}

type warningStyleSet struct{ label, kind, dim lipgloss.Style }

// warningStyles builds styles for w. The renderer drops colors when w is
// not a terminal.
func warningStyles(w io.Writer) warningStyleSet {
	r := lipgloss.NewRenderer(w)
	return warningStyleSet{
		label: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		kind:  r.NewStyle().Foreground(lipgloss.Color("11")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func printWarnings(w io.Writer, warnings []warningLine) {
	styles := warningStyles(w)
	for _, warning := range warnings {
		subject := ""
		if warning.Subject != "" {
			subject = " " + styles.dim.Render("<"+warning.Subject+">")
		}
		_, _ = fmt.Fprintf(w, "%s %s%s %s\n",
			styles.label.Render("warning:"),
			styles.kind.Render(warning.Stage+"/"+warning.Type),
			subject,
			warning.Message,
		)
	}
}
