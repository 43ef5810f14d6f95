package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ruleKeys = map[string]bool{"pattern": true, "flags": true, "builtin": true}

func unknownKey(key string, line int) error {
	return &LoadError{
		Code:    ErrCodeParseFailed,
		Message: fmt.Sprintf("unknown rule field %q (want pattern, flags or builtin)", key),
		Line:    line,
	}
}

// parseYAML reads the "rules" mapping, keeping key order.
func parseYAML(data []byte) ([]Definition, error) {
	var doc struct {
		Rules yaml.Node `yaml:"rules"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	return DecodeYAMLRules(&doc.Rules)
}

// DecodeYAMLRules converts a YAML mapping of rule names to definitions,
// keeping key order. An absent node yields no definitions.
func DecodeYAMLRules(node *yaml.Node) ([]Definition, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "rules must map names to rules", Line: node.Line}
	}

	var defs []Definition
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.MappingNode {
			return nil, &LoadError{
				Code:    ErrCodeParseFailed,
				Message: fmt.Sprintf("rule %q must be a mapping", key.Value),
				Line:    val.Line,
			}
		}
		for j := 0; j+1 < len(val.Content); j += 2 {
			if k := val.Content[j]; !ruleKeys[k.Value] {
				return nil, unknownKey(k.Value, k.Line)
			}
		}

		var fields struct {
			Pattern string  `yaml:"pattern"`
			Flags   *string `yaml:"flags"`
			Builtin string  `yaml:"builtin"`
		}
		if err := val.Decode(&fields); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), Line: val.Line}
		}

		defs = append(defs, Definition{
			Name:    key.Value,
			Pattern: fields.Pattern,
			Flags:   fields.Flags,
			Builtin: fields.Builtin,
			Line:    key.Line,
		})
	}
	return defs, nil
}

// parseTOML reads [[rule]] tables in order.
func parseTOML(data []byte) ([]Definition, error) {
	var doc struct {
		Rules []struct {
			Name    string  `toml:"name"`
			Pattern string  `toml:"pattern"`
			Flags   *string `toml:"flags"`
			Builtin string  `toml:"builtin"`
		} `toml:"rule"`
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, _ := de.Position()
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: de.Error(), Line: row}
		}
		return nil, err
	}

	defs := make([]Definition, 0, len(doc.Rules))
	for _, r := range doc.Rules {
		defs = append(defs, Definition{
			Name:    r.Name,
			Pattern: r.Pattern,
			Flags:   r.Flags,
			Builtin: r.Builtin,
		})
	}
	return defs, nil
}

// parseCUE reads the "rules" struct in declaration order.
func parseCUE(path string, data []byte) ([]Definition, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "building CUE value", Err: err}
	}

	rulesVal := value.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return nil, nil
	}

	iter, err := rulesVal.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "rules must be a struct", Err: err}
	}

	var defs []Definition
	for iter.Next() {
		ruleVal := iter.Value()
		def := Definition{Name: iter.Label(), Line: ruleVal.Pos().Line()}

		fields, err := ruleVal.Fields()
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeParseFailed,
				Message: fmt.Sprintf("rule %q must be a struct", def.Name),
				Line:    def.Line,
			}
		}
		for fields.Next() {
			label := fields.Label()
			if !ruleKeys[label] {
				return nil, unknownKey(label, fields.Value().Pos().Line())
			}
			s, err := fields.Value().String()
			if err != nil {
				return nil, &LoadError{
					Code:    ErrCodeParseFailed,
					Message: fmt.Sprintf("rule %q: %s must be a string", def.Name, label),
					Line:    fields.Value().Pos().Line(),
				}
			}
			switch label {
			case "pattern":
				def.Pattern = s
			case "flags":
				def.Flags = &s
			case "builtin":
				def.Builtin = s
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}
