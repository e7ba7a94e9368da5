package output

import (
	"fmt"
	"io"
	"os"

	"github.com/driftlens/driftlens/pkg/types"
)

// Format represents the available output formats
type Format string

const (
	FormatJSON     Format = "json"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name; empty selects the table format
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatTable, FormatMarkdown:
		return Format(name), nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// Renderer dispatches report formatting to the concrete formatters
type Renderer struct {
	jsonOut     *JSONFormatter
	tableOut    *TableFormatter
	markdownOut *MarkdownFormatter
}

// NewRenderer creates a new output renderer
func NewRenderer() *Renderer {
	return &Renderer{
		jsonOut:     NewJSONFormatter(),
		tableOut:    NewTableFormatter(),
		markdownOut: NewMarkdownFormatter(),
	}
}

// FormatReport formats a report in the specified format
func (r *Renderer) FormatReport(report *types.Report, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return r.jsonOut.FormatReport(report)
	case FormatTable:
		return r.tableOut.FormatReport(report)
	case FormatMarkdown:
		return r.markdownOut.FormatReport(report)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteTo writes formatted output to a writer
func (r *Renderer) WriteTo(data []byte, w io.Writer) error {
	_, err := w.Write(data)
	return err
}

// WriteToFile writes formatted output to a file
func (r *Renderer) WriteToFile(data []byte, filename string) error {
	return os.WriteFile(filename, data, 0o644)
}
