package analyzer

import (
	"sync"
	"time"

	"github.com/driftlens/driftlens/internal/logger"
	"github.com/driftlens/driftlens/pkg/types"
)

// Options configures an analysis run
type Options struct {
	// Workers sets the number of goroutines classifying observed resources.
	// Values below 2 keep the run single-threaded. Report order is preserved
	// either way.
	Workers int
	// Logger receives diagnostics such as duplicate declared keys. Nil
	// disables logging.
	Logger logger.Logger
}

// Analyze pairs every observed resource with its IaC counterpart and
// classifies it as Match, Modified, or Missing. The result always holds
// exactly one entry per observed resource, in input order; neither input
// collection is mutated.
func Analyze(observed, declared []*types.Record, opts Options) *types.Report {
	index := BuildIndex(declared)
	if opts.Logger != nil {
		for _, key := range index.DuplicateKeys() {
			opts.Logger.WithField("key", key).Warn("duplicate declared resource key, later entry wins")
		}
	}

	entries := make([]types.ReportEntry, len(observed))
	if opts.Workers > 1 && len(observed) > 1 {
		analyzeParallel(observed, index, entries, opts.Workers)
	} else {
		for i, record := range observed {
			entries[i] = analyzeResource(record, i, index)
		}
	}

	return &types.Report{
		Entries:   entries,
		Summary:   summarize(entries),
		Timestamp: time.Now().UTC(),
	}
}

// analyzeResource produces the report entry for one observed resource. Each
// resource takes exactly one terminal path: no counterpart is Missing, a
// counterpart with an empty changelog is Match, anything else is Modified.
func analyzeResource(record *types.Record, pos int, index *Index) types.ReportEntry {
	entry := types.ReportEntry{
		CloudResourceItem: record,
		State:             types.StateMissing,
		ChangeLog:         []types.ChangeEntry{},
	}

	matched := index.Match(record, pos)
	if matched == nil {
		return entry
	}

	entry.IacResourceItem = matched
	compareValues("", record, matched, &entry.ChangeLog)
	if len(entry.ChangeLog) == 0 {
		entry.State = types.StateMatch
	} else {
		entry.State = types.StateModified
	}
	return entry
}

// analyzeParallel fans the per-resource loop out over a bounded worker pool.
// Workers share only the read-only index and write disjoint result slots, so
// no further synchronization is needed.
func analyzeParallel(observed []*types.Record, index *Index, entries []types.ReportEntry, workers int) {
	if workers > len(observed) {
		workers = len(observed)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = analyzeResource(observed[i], i, index)
			}
		}()
	}

	for i := range observed {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func summarize(entries []types.ReportEntry) types.Summary {
	summary := types.Summary{TotalResources: len(entries)}
	for _, entry := range entries {
		switch entry.State {
		case types.StateMatch:
			summary.Matched++
		case types.StateModified:
			summary.Modified++
		case types.StateMissing:
			summary.Missing++
		}
	}
	return summary
}
