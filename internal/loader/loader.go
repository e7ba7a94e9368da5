package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	drifterrors "github.com/driftlens/driftlens/internal/errors"
	"github.com/driftlens/driftlens/pkg/types"
)

// Load reads a resource collection from a JSON or YAML file. The document
// must hold a top-level sequence of record mappings; anything else is a
// validation error. The engine itself never touches the filesystem, so all
// I/O failures surface here.
func Load(path string) ([]*types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, drifterrors.New(drifterrors.ErrorTypeFileSystem,
			fmt.Sprintf("cannot read resource file %s", path)).
			WithCause(err.Error()).
			WithSolutions("Check that the file exists and is readable")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path, data)
	default:
		return parseJSON(path, data)
	}
}

func parseJSON(path string, data []byte) ([]*types.Record, error) {
	if !json.Valid(data) {
		return nil, drifterrors.New(drifterrors.ErrorTypeValidation,
			fmt.Sprintf("invalid JSON in %s", path)).
			WithSolutions("Validate the file with a JSON linter")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, drifterrors.New(drifterrors.ErrorTypeValidation,
			fmt.Sprintf("%s must contain a top-level array of resource records", path)).
			WithCause(err.Error())
	}

	records := make([]*types.Record, 0, len(raw))
	for i, element := range raw {
		record := types.NewRecord()
		if err := record.UnmarshalJSON(element); err != nil {
			return nil, drifterrors.New(drifterrors.ErrorTypeValidation,
				fmt.Sprintf("%s: element %d is not a resource record", path, i)).
				WithCause(err.Error())
		}
		records = append(records, record)
	}
	return records, nil
}

func parseYAML(path string, data []byte) ([]*types.Record, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, drifterrors.New(drifterrors.ErrorTypeValidation,
			fmt.Sprintf("invalid YAML in %s", path)).
			WithCause(err.Error())
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, drifterrors.New(drifterrors.ErrorTypeValidation,
			fmt.Sprintf("%s is empty", path))
	}

	seq := root.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, drifterrors.New(drifterrors.ErrorTypeValidation,
			fmt.Sprintf("%s must contain a top-level sequence of resource records", path))
	}

	records := make([]*types.Record, 0, len(seq.Content))
	for i, node := range seq.Content {
		value, err := valueFromYAML(node)
		if err != nil {
			return nil, drifterrors.New(drifterrors.ErrorTypeValidation,
				fmt.Sprintf("%s: element %d: %s", path, i, err)).
				WithCause(err.Error())
		}
		record, ok := value.(*types.Record)
		if !ok {
			return nil, drifterrors.New(drifterrors.ErrorTypeValidation,
				fmt.Sprintf("%s: element %d is not a resource record", path, i))
		}
		records = append(records, record)
	}
	return records, nil
}

// valueFromYAML converts a YAML node to the decoded value model the engine
// works on. Mappings keep their document key order; numbers become
// json.Number so JSON and YAML inputs compare identically.
func valueFromYAML(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		record := types.NewRecord()
		for i := 0; i < len(node.Content)-1; i += 2 {
			value, err := valueFromYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			record.Set(node.Content[i].Value, value)
		}
		return record, nil

	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := valueFromYAML(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, value)
		}
		return seq, nil

	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		case "!!int", "!!float":
			return json.Number(node.Value), nil
		default:
			return node.Value, nil
		}

	case yaml.AliasNode:
		return valueFromYAML(node.Alias)

	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", node.Kind)
	}
}
