package analyzer

import (
	"fmt"

	"github.com/driftlens/driftlens/pkg/types"
)

// InvalidInputKindError reports a top-level comparison input that is not a
// record mapping. It is the only failure the engine signals; every other
// irregularity (missing keys, duplicate ids, mismatched container kinds) is
// defined behavior.
type InvalidInputKindError struct {
	Side  string
	Value any
}

func (e *InvalidInputKindError) Error() string {
	return fmt.Sprintf("invalid %s input: expected a record mapping, got %T", e.Side, e.Value)
}

// CompareResources recursively diffs a cloud resource against its IaC
// declaration and returns one changelog entry per differing leaf, in
// traversal order.
func CompareResources(cloud, iac any) ([]types.ChangeEntry, error) {
	if kindOf(cloud) != kindMapping {
		return nil, &InvalidInputKindError{Side: "cloud", Value: cloud}
	}
	if kindOf(iac) != kindMapping {
		return nil, &InvalidInputKindError{Side: "iac", Value: iac}
	}

	changes := []types.ChangeEntry{}
	compareValues("", cloud, iac, &changes)
	return changes, nil
}

// compareValues walks two values in lockstep, dispatching on the kind pair:
//
//   - mapping × mapping: union of keys, cloud insertion order first, then
//     keys unique to the declaration in its order; one-sided keys recurse
//     with the absent marker and bottom out as a single difference.
//   - sequence × sequence: strictly positional up to the longer length.
//     Reordered elements produce differences even when the multisets are
//     equal; positional comparison is a deliberate predictability trade-off.
//   - anything else (mismatched container kinds, one absent side, primitive
//     pairs): a single difference at the current path unless both sides are
//     primitives that compare equal.
//
// Depth is bounded only by the process stack, never truncated.
func compareValues(path string, cloud, iac any, changes *[]types.ChangeEntry) {
	cloudKind, iacKind := kindOf(cloud), kindOf(iac)

	switch {
	case cloudKind == kindMapping && iacKind == kindMapping:
		cloudRec := cloud.(*types.Record)
		iacRec := iac.(*types.Record)
		for _, key := range cloudRec.Keys() {
			cloudValue, _ := cloudRec.Get(key)
			iacValue := absent
			if v, ok := iacRec.Get(key); ok {
				iacValue = v
			}
			compareValues(childPath(path, key), cloudValue, iacValue, changes)
		}
		for _, key := range iacRec.Keys() {
			if _, ok := cloudRec.Get(key); ok {
				continue
			}
			iacValue, _ := iacRec.Get(key)
			compareValues(childPath(path, key), absent, iacValue, changes)
		}

	case cloudKind == kindSequence && iacKind == kindSequence:
		cloudSeq := cloud.([]any)
		iacSeq := iac.([]any)
		n := len(cloudSeq)
		if len(iacSeq) > n {
			n = len(iacSeq)
		}
		for i := 0; i < n; i++ {
			cloudValue, iacValue := absent, absent
			if i < len(cloudSeq) {
				cloudValue = cloudSeq[i]
			}
			if i < len(iacSeq) {
				iacValue = iacSeq[i]
			}
			compareValues(fmt.Sprintf("%s[%d]", path, i), cloudValue, iacValue, changes)
		}

	default:
		if cloudKind == kindPrimitive && iacKind == kindPrimitive && primitivesEqual(cloud, iac) {
			return
		}
		*changes = append(*changes, types.ChangeEntry{
			KeyName:    path,
			CloudValue: exportValue(cloud),
			IacValue:   exportValue(iac),
		})
	}
}

// childPath appends a field name; the root call passes an empty prefix so
// the first segment carries no leading separator.
func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
