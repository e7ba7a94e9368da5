package output

import (
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlens/driftlens/pkg/types"
)

func testReport(t *testing.T) *types.Report {
	t.Helper()
	cloud := types.NewRecord()
	require.NoError(t, cloud.UnmarshalJSON([]byte(`{"id":"vpc-1","cidr":"10.0.0.0/16"}`)))
	iac := types.NewRecord()
	require.NoError(t, iac.UnmarshalJSON([]byte(`{"id":"vpc-1","cidr":"10.0.0.0/24"}`)))
	orphan := types.NewRecord()
	require.NoError(t, orphan.UnmarshalJSON([]byte(`{"name":"stray-bucket"}`)))

	return &types.Report{
		Entries: []types.ReportEntry{
			{
				CloudResourceItem: cloud,
				IacResourceItem:   iac,
				State:             types.StateModified,
				ChangeLog: []types.ChangeEntry{
					{KeyName: "cidr", CloudValue: "10.0.0.0/16", IacValue: "10.0.0.0/24"},
				},
			},
			{
				CloudResourceItem: orphan,
				State:             types.StateMissing,
				ChangeLog:         []types.ChangeEntry{},
			},
		},
		Summary:   types.Summary{TotalResources: 2, Modified: 1, Missing: 1},
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestJSONFormatter_WireFormat(t *testing.T) {
	data, err := NewJSONFormatter().FormatReport(testReport(t))
	require.NoError(t, err)

	expected := `[
		{
			"CloudResourceItem": {"id":"vpc-1","cidr":"10.0.0.0/16"},
			"IacResourceItem": {"id":"vpc-1","cidr":"10.0.0.0/24"},
			"State": "Modified",
			"ChangeLog": [{"KeyName":"cidr","CloudValue":"10.0.0.0/16","IacValue":"10.0.0.0/24"}]
		},
		{
			"CloudResourceItem": {"name":"stray-bucket"},
			"IacResourceItem": null,
			"State": "Missing",
			"ChangeLog": []
		}
	]`
	assert.JSONEq(t, expected, string(data))
}

func TestTableFormatter_Summary(t *testing.T) {
	color.NoColor = true
	out, err := NewTableFormatter().FormatReport(testReport(t))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Modified:")
	assert.Contains(t, text, "vpc-1")
	assert.Contains(t, text, `cidr: "10.0.0.0/16" -> "10.0.0.0/24"`)
	assert.Contains(t, text, "Missing from IaC:")
	assert.Contains(t, text, "stray-bucket")
}

func TestTableFormatter_NoDrift(t *testing.T) {
	color.NoColor = true
	report := &types.Report{
		Summary:   types.Summary{TotalResources: 3, Matched: 3},
		Timestamp: time.Now(),
	}
	out, err := NewTableFormatter().FormatReport(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No drift detected")
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().FormatReport(testReport(t))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# Drift Analysis")
	assert.Contains(t, text, "| Modified | 1 |")
	assert.Contains(t, text, "## `vpc-1` — Modified")
	assert.Contains(t, text, "## `stray-bucket` — Missing from IaC")
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, format)

	for _, name := range []string{"json", "table", "markdown"} {
		format, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), format)
	}

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestRenderer_Dispatch(t *testing.T) {
	renderer := NewRenderer()
	report := testReport(t)

	for _, format := range []Format{FormatJSON, FormatTable, FormatMarkdown} {
		out, err := renderer.FormatReport(report, format)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	}

	_, err := renderer.FormatReport(report, Format("bogus"))
	assert.Error(t, err)
}
