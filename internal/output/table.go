package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/driftlens/driftlens/pkg/types"
)

// TableFormatter renders a human-readable drift summary for terminals
type TableFormatter struct {
	green  *color.Color
	yellow *color.Color
	red    *color.Color
}

// NewTableFormatter creates a new table formatter. Color output follows the
// package-global color.NoColor toggle set by the CLI.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
	}
}

// FormatReport formats a report as a terminal summary with one section per
// non-clean resource.
func (f *TableFormatter) FormatReport(report *types.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("Drift Analysis\n")
	buf.WriteString("==============\n")
	buf.WriteString(fmt.Sprintf("Analyzed at: %s\n\n", report.Timestamp.Format("2006-01-02 15:04:05 MST")))

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total resources:\t%d\n", report.Summary.TotalResources)
	fmt.Fprintf(w, "Match:\t%d\n", report.Summary.Matched)
	fmt.Fprintf(w, "Modified:\t%d\n", report.Summary.Modified)
	fmt.Fprintf(w, "Missing:\t%d\n", report.Summary.Missing)
	w.Flush()
	buf.WriteString("\n")

	if !report.Summary.HasDrift() {
		buf.WriteString(f.green.Sprint("No drift detected - cloud state matches IaC declarations.\n"))
		return buf.Bytes(), nil
	}

	if report.Summary.Modified > 0 {
		buf.WriteString("Modified:\n")
		for _, entry := range report.Entries {
			if entry.State != types.StateModified {
				continue
			}
			buf.WriteString(fmt.Sprintf("  %s %s (%d change(s))\n",
				f.yellow.Sprint("~"), resourceLabel(entry.CloudResourceItem), len(entry.ChangeLog)))
			for _, change := range entry.ChangeLog {
				buf.WriteString(fmt.Sprintf("    %s: %s -> %s\n",
					change.KeyName, displayValue(change.CloudValue), displayValue(change.IacValue)))
			}
		}
		buf.WriteString("\n")
	}

	if report.Summary.Missing > 0 {
		buf.WriteString("Missing from IaC:\n")
		for _, entry := range report.Entries {
			if entry.State != types.StateMissing {
				continue
			}
			buf.WriteString(fmt.Sprintf("  %s %s\n",
				f.red.Sprint("-"), resourceLabel(entry.CloudResourceItem)))
		}
	}

	return buf.Bytes(), nil
}

// resourceLabel picks a display name for a resource: name, then id, then a
// placeholder for records carrying neither.
func resourceLabel(record *types.Record) string {
	if v, ok := record.Get("name"); ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if v, ok := record.Get("id"); ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return "(unnamed)"
}

// displayValue renders a changelog value compactly for terminal output
func displayValue(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
