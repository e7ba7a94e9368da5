package analyzer

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlens/driftlens/pkg/types"
)

func TestAnalyze_ModifiedScenario(t *testing.T) {
	observed := []*types.Record{mustRecord(t, `{"id":"vpc-1","cidr":"10.0.0.0/16"}`)}
	declared := []*types.Record{mustRecord(t, `{"id":"vpc-1","cidr":"10.0.0.0/24"}`)}

	report := Analyze(observed, declared, Options{})
	require.Len(t, report.Entries, 1)

	entry := report.Entries[0]
	assert.Equal(t, types.StateModified, entry.State)
	assert.Same(t, observed[0], entry.CloudResourceItem)
	assert.Same(t, declared[0], entry.IacResourceItem)
	require.Len(t, entry.ChangeLog, 1)
	assert.Equal(t, types.ChangeEntry{
		KeyName:    "cidr",
		CloudValue: "10.0.0.0/16",
		IacValue:   "10.0.0.0/24",
	}, entry.ChangeLog[0])
	assert.Equal(t, types.Summary{TotalResources: 1, Modified: 1}, report.Summary)
}

func TestAnalyze_MissingScenario(t *testing.T) {
	observed := []*types.Record{mustRecord(t, `{"id":"vpc-9"}`)}

	report := Analyze(observed, nil, Options{})
	require.Len(t, report.Entries, 1)

	entry := report.Entries[0]
	assert.Equal(t, types.StateMissing, entry.State)
	assert.Nil(t, entry.IacResourceItem)
	assert.Empty(t, entry.ChangeLog)
	assert.NotNil(t, entry.ChangeLog, "changelog is always present, even when empty")
}

func TestAnalyze_Totality(t *testing.T) {
	var observed []*types.Record
	for i := 0; i < 25; i++ {
		observed = append(observed, mustRecord(t, fmt.Sprintf(`{"id":"r-%d"}`, i)))
	}
	declared := []*types.Record{
		mustRecord(t, `{"id":"r-3"}`),
		mustRecord(t, `{"id":"r-7","extra":true}`),
	}

	report := Analyze(observed, declared, Options{})
	require.Len(t, report.Entries, len(observed), "exactly one entry per observed record")
	for i, entry := range report.Entries {
		assert.Same(t, observed[i], entry.CloudResourceItem, "input order preserved at %d", i)
	}
}

func TestAnalyze_ClassificationPartition(t *testing.T) {
	observed := []*types.Record{
		mustRecord(t, `{"id":"a","v":1}`),
		mustRecord(t, `{"id":"b","v":1}`),
		mustRecord(t, `{"id":"c","v":1}`),
	}
	declared := []*types.Record{
		mustRecord(t, `{"id":"a","v":1}`),
		mustRecord(t, `{"id":"b","v":2}`),
	}

	report := Analyze(observed, declared, Options{})
	for _, entry := range report.Entries {
		switch entry.State {
		case types.StateMatch, types.StateMissing:
			assert.Empty(t, entry.ChangeLog)
		case types.StateModified:
			assert.NotEmpty(t, entry.ChangeLog)
		default:
			t.Fatalf("unexpected state %q", entry.State)
		}
	}
	assert.Equal(t, types.Summary{TotalResources: 3, Matched: 1, Modified: 1, Missing: 1}, report.Summary)
}

func TestAnalyze_Idempotence(t *testing.T) {
	observed := []*types.Record{
		mustRecord(t, `{"id":"vpc-1","cidr":"10.0.0.0/16","tags":{"Env":"prod","Team":"core"}}`),
		mustRecord(t, `{"name":"bucket-a","versioning":true}`),
		mustRecord(t, `{"kind":"orphan"}`),
	}
	declared := []*types.Record{
		mustRecord(t, `{"id":"vpc-1","cidr":"10.0.0.0/24","tags":{"Env":"prod"}}`),
		mustRecord(t, `{"name":"bucket-a","versioning":false}`),
	}

	first, err := json.Marshal(Analyze(observed, declared, Options{}).Entries)
	require.NoError(t, err)
	second, err := json.Marshal(Analyze(observed, declared, Options{}).Entries)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestAnalyze_MatchingPriorityOverName(t *testing.T) {
	observed := []*types.Record{mustRecord(t, `{"id":"x"}`)}
	declared := []*types.Record{
		mustRecord(t, `{"name":"x","decoy":true}`),
		mustRecord(t, `{"id":"x","real":true}`),
	}

	report := Analyze(observed, declared, Options{})
	require.Len(t, report.Entries, 1)
	assert.Same(t, declared[1], report.Entries[0].IacResourceItem)
}

func TestAnalyze_ParallelMatchesSequential(t *testing.T) {
	var observed, declared []*types.Record
	for i := 0; i < 200; i++ {
		observed = append(observed, mustRecord(t, fmt.Sprintf(`{"id":"r-%d","n":%d}`, i, i)))
		if i%3 != 0 {
			declared = append(declared, mustRecord(t, fmt.Sprintf(`{"id":"r-%d","n":%d}`, i, i*2)))
		}
	}

	sequential := Analyze(observed, declared, Options{})
	parallel := Analyze(observed, declared, Options{Workers: 8})

	require.Len(t, parallel.Entries, len(sequential.Entries))
	seqJSON, err := json.Marshal(sequential.Entries)
	require.NoError(t, err)
	parJSON, err := json.Marshal(parallel.Entries)
	require.NoError(t, err)
	assert.Equal(t, string(seqJSON), string(parJSON), "worker pool preserves report order")
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	report := Analyze(nil, nil, Options{})
	assert.Empty(t, report.Entries)
	assert.Equal(t, types.Summary{}, report.Summary)
	assert.False(t, report.Summary.HasDrift())
}

func TestAnalyze_WireFormat(t *testing.T) {
	observed := []*types.Record{mustRecord(t, `{"id":"vpc-1","cidr":"10.0.0.0/16"}`)}
	declared := []*types.Record{mustRecord(t, `{"id":"vpc-1","cidr":"10.0.0.0/24"}`)}

	report := Analyze(observed, declared, Options{})
	data, err := json.Marshal(report.Entries)
	require.NoError(t, err)

	expected := `[{
		"CloudResourceItem": {"id":"vpc-1","cidr":"10.0.0.0/16"},
		"IacResourceItem": {"id":"vpc-1","cidr":"10.0.0.0/24"},
		"State": "Modified",
		"ChangeLog": [{"KeyName":"cidr","CloudValue":"10.0.0.0/16","IacValue":"10.0.0.0/24"}]
	}]`
	assert.JSONEq(t, expected, string(data))
}
