package output

import (
	"bytes"
	"fmt"

	"github.com/driftlens/driftlens/pkg/types"
)

// MarkdownFormatter renders a report as a markdown document, suitable for
// pull request comments and wikis.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// FormatReport formats a report as markdown
func (f *MarkdownFormatter) FormatReport(report *types.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Drift Analysis\n\n")
	buf.WriteString(fmt.Sprintf("Analyzed at: %s\n\n", report.Timestamp.Format("2006-01-02 15:04:05 MST")))

	buf.WriteString("| State | Count |\n")
	buf.WriteString("|-------|-------|\n")
	buf.WriteString(fmt.Sprintf("| Match | %d |\n", report.Summary.Matched))
	buf.WriteString(fmt.Sprintf("| Modified | %d |\n", report.Summary.Modified))
	buf.WriteString(fmt.Sprintf("| Missing | %d |\n", report.Summary.Missing))
	buf.WriteString(fmt.Sprintf("| **Total** | **%d** |\n\n", report.Summary.TotalResources))

	if !report.Summary.HasDrift() {
		buf.WriteString("No drift detected.\n")
		return buf.Bytes(), nil
	}

	for _, entry := range report.Entries {
		switch entry.State {
		case types.StateModified:
			buf.WriteString(fmt.Sprintf("## `%s` — Modified\n\n", resourceLabel(entry.CloudResourceItem)))
			buf.WriteString("| Field | Cloud | IaC |\n")
			buf.WriteString("|-------|-------|-----|\n")
			for _, change := range entry.ChangeLog {
				buf.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n",
					change.KeyName, displayValue(change.CloudValue), displayValue(change.IacValue)))
			}
			buf.WriteString("\n")
		case types.StateMissing:
			buf.WriteString(fmt.Sprintf("## `%s` — Missing from IaC\n\n", resourceLabel(entry.CloudResourceItem)))
		}
	}

	return buf.Bytes(), nil
}
