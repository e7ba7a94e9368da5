package analyzer

import (
	"encoding/json"
	"strconv"

	"github.com/driftlens/driftlens/pkg/types"
)

// valueKind is the closed variant the comparison engine dispatches on.
// Decoded resource values are mappings (*types.Record), sequences ([]any),
// or primitives (string, json.Number, bool, nil); absent marks a key or
// index that exists on only one side.
type valueKind int

const (
	kindPrimitive valueKind = iota
	kindMapping
	kindSequence
	kindAbsent
)

// absentValue is the explicit marker for a missing key or index. It has no
// substructure and renders as JSON null in the changelog.
type absentValue struct{}

func (absentValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

var absent any = absentValue{}

func kindOf(v any) valueKind {
	switch v.(type) {
	case absentValue:
		return kindAbsent
	case *types.Record:
		return kindMapping
	case []any:
		return kindSequence
	default:
		return kindPrimitive
	}
}

// exportValue converts an internal value to its changelog representation
func exportValue(v any) any {
	if _, ok := v.(absentValue); ok {
		return nil
	}
	return v
}

// primitivesEqual applies strict value-and-type equality: the string "true"
// and the boolean true are unequal. Numbers compare numerically, so the
// lexical spellings 1 and 1.0 are equal.
func primitivesEqual(a, b any) bool {
	if an, ok := a.(json.Number); ok {
		bn, ok := b.(json.Number)
		if !ok {
			return false
		}
		if an == bn {
			return true
		}
		af, aerr := an.Float64()
		bf, berr := bn.Float64()
		return aerr == nil && berr == nil && af == bf
	}
	if _, ok := b.(json.Number); ok {
		return false
	}
	return a == b
}

// indexKey renders a primitive identifier value as a lookup key. Null and
// container values are not usable for indexing.
func indexKey(v any, present bool) (string, bool) {
	if !present || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
