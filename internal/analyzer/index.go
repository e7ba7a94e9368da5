package analyzer

import (
	"fmt"

	"github.com/driftlens/driftlens/pkg/types"
)

// Fields consulted when pairing an observed resource with its declaration
const (
	fieldID   = "id"
	fieldName = "name"
)

// Index provides O(1) lookup of an IaC counterpart for an observed resource.
// Identifiers and names live in strictly separate namespaces so a resource
// named "foo" can never match an unrelated resource whose id is "foo".
// Declarations with neither field are reachable only by position.
//
// The index holds pointers into the declared collection; it never copies or
// mutates the underlying records.
type Index struct {
	byID       map[string]*types.Record
	byName     map[string]*types.Record
	byPosition map[string]*types.Record
	duplicates []string
}

// BuildIndex indexes the declared collection in sequence order. Each record
// lands in exactly one map: by id when it has a usable id, else by name,
// else by a synthetic positional key. Duplicate keys are accepted with
// last-write-wins semantics and recorded for diagnostics.
func BuildIndex(declared []*types.Record) *Index {
	idx := &Index{
		byID:       make(map[string]*types.Record),
		byName:     make(map[string]*types.Record),
		byPosition: make(map[string]*types.Record),
	}

	for i, record := range declared {
		if key, ok := indexKey(record.Get(fieldID)); ok {
			if _, exists := idx.byID[key]; exists {
				idx.duplicates = append(idx.duplicates, fmt.Sprintf("id %q", key))
			}
			idx.byID[key] = record
			continue
		}
		if key, ok := indexKey(record.Get(fieldName)); ok {
			if _, exists := idx.byName[key]; exists {
				idx.duplicates = append(idx.duplicates, fmt.Sprintf("name %q", key))
			}
			idx.byName[key] = record
			continue
		}
		idx.byPosition[positionKey(i)] = record
	}

	return idx
}

// Match selects the IaC counterpart for an observed resource, or nil when
// none exists. Lookup is a strict priority chain: a usable id is looked up
// in the id namespace, otherwise a usable name in the name namespace. A
// present-but-unmatched id never falls through to name matching; that would
// risk pairing a renamed-and-reassigned resource with the wrong declaration.
// Any remaining miss attempts the positional fallback for pos before giving
// up.
func (idx *Index) Match(observed *types.Record, pos int) *types.Record {
	if key, ok := indexKey(observed.Get(fieldID)); ok {
		if match, found := idx.byID[key]; found {
			return match
		}
	} else if key, ok := indexKey(observed.Get(fieldName)); ok {
		if match, found := idx.byName[key]; found {
			return match
		}
	}
	if match, found := idx.byPosition[positionKey(pos)]; found {
		return match
	}
	return nil
}

// DuplicateKeys returns descriptions of declared keys that were overwritten
// during indexing, in encounter order.
func (idx *Index) DuplicateKeys() []string {
	return idx.duplicates
}

func positionKey(i int) string {
	return fmt.Sprintf("_index_%d", i)
}
