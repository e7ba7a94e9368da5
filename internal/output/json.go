package output

import (
	"encoding/json"

	"github.com/driftlens/driftlens/pkg/types"
)

// JSONFormatter renders the report wire format: an indented array with one
// object per observed resource. Record fields keep their source order, so
// the same inputs always produce byte-identical output.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatReport formats a report as JSON
func (f *JSONFormatter) FormatReport(report *types.Report) ([]byte, error) {
	return json.MarshalIndent(report.Entries, "", "  ")
}
