package styling

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition is one precompiled atomic rule.
// On the wire it is the array [className, css, rtlCSS|null].
type Definition struct {
	// ClassName is the hashed class the rule targets, e.g. "a1ewtqcl"
	ClassName string

	// CSS is the full rule text, e.g. ".a1ewtqcl{box-sizing:border-box;}"
	CSS string

	// RTLCSS is the right-to-left variant targeting "r"+ClassName.
	// Empty means the rule reads the same in both directions.
	RTLCSS string
}

// HasRTL reports whether the definition carries a right-to-left variant
func (d Definition) HasRTL() bool {
	return d.RTLCSS != ""
}

// ClassFor returns the class name applied for the given direction
func (d Definition) ClassFor(rtl bool) string {
	if rtl && d.HasRTL() {
		return "r" + d.ClassName
	}
	return d.ClassName
}

// CSSFor returns the rule text inserted for the given direction
func (d Definition) CSSFor(rtl bool) string {
	if rtl && d.HasRTL() {
		return d.RTLCSS
	}
	return d.CSS
}

// MarshalJSON writes the [className, css, rtlCSS|null] triple
func (d Definition) MarshalJSON() ([]byte, error) {
	var rtl any
	if d.HasRTL() {
		rtl = d.RTLCSS
	}
	return json.Marshal([]any{d.ClassName, d.CSS, rtl})
}

// UnmarshalJSON reads a [className, css] pair or a [className, css, rtlCSS|null] triple
func (d *Definition) UnmarshalJSON(data []byte) error {
	var raw []*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DecodeError{Message: "expected an array of strings", Err: err}
	}
	def, err := definitionFromSlots(raw)
	if err != nil {
		return err
	}
	*d = def
	return nil
}

// MarshalYAML writes the same triple as MarshalJSON
func (d Definition) MarshalYAML() (any, error) {
	var rtl any
	if d.HasRTL() {
		rtl = d.RTLCSS
	}
	return []any{d.ClassName, d.CSS, rtl}, nil
}

// UnmarshalYAML reads a definition from a YAML sequence
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return &DecodeError{Message: fmt.Sprintf("line %d: expected a sequence", node.Line)}
	}
	raw := make([]*string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return &DecodeError{Message: fmt.Sprintf("line %d: expected a scalar", item.Line)}
		}
		if item.Tag == "!!null" {
			raw = append(raw, nil)
			continue
		}
		value := item.Value
		raw = append(raw, &value)
	}
	def, err := definitionFromSlots(raw)
	if err != nil {
		return err
	}
	*d = def
	return nil
}

func definitionFromSlots(raw []*string) (Definition, error) {
	if len(raw) != 2 && len(raw) != 3 {
		return Definition{}, &DecodeError{Message: fmt.Sprintf("expected 2 or 3 elements, got %d", len(raw))}
	}
	if raw[0] == nil || *raw[0] == "" {
		return Definition{}, &DecodeError{Message: "class name is missing"}
	}
	if raw[1] == nil {
		return Definition{}, &DecodeError{Message: "css is missing"}
	}

	def := Definition{ClassName: *raw[0], CSS: *raw[1]}
	if len(raw) == 3 && raw[2] != nil {
		def.RTLCSS = *raw[2]
	}
	return def, nil
}

// Entry pairs a property name with its definition
type Entry struct {
	Property   string
	Definition Definition
}

// DefinitionSet is an ordered list of property definitions.
// Order is the insertion order of rules into a stylesheet.
type DefinitionSet []Entry

// Get returns the definition recorded for a property
func (s DefinitionSet) Get(property string) (Definition, bool) {
	for _, e := range s {
		if e.Property == property {
			return e.Definition, true
		}
	}
	return Definition{}, false
}

// Merge returns a new set where entries of other replace entries with
// the same property in place, and new properties are appended
func (s DefinitionSet) Merge(other DefinitionSet) DefinitionSet {
	merged := make(DefinitionSet, len(s), len(s)+len(other))
	copy(merged, s)

	positions := make(map[string]int, len(s)+len(other))
	for i, e := range merged {
		positions[e.Property] = i
	}

	for _, e := range other {
		if i, ok := positions[e.Property]; ok {
			merged[i].Definition = e.Definition
			continue
		}
		positions[e.Property] = len(merged)
		merged = append(merged, e)
	}
	return merged
}

// MarshalJSON writes the set as an object, keeping entry order
func (s DefinitionSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Property)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Definition)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of definitions, keeping key order
func (s *DefinitionSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return &DecodeError{Message: err.Error(), Err: err}
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return &DecodeError{Message: "expected an object"}
	}

	var set DefinitionSet
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return &DecodeError{Message: err.Error(), Err: err}
		}
		property := tok.(string)

		var def Definition
		if err := dec.Decode(&def); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Property = property
				return de
			}
			return &DecodeError{Property: property, Message: err.Error(), Err: err}
		}
		// a repeated key replaces the earlier value in place
		set = set.Merge(DefinitionSet{{Property: property, Definition: def}})
	}

	if _, err := dec.Token(); err != nil {
		return &DecodeError{Message: err.Error(), Err: err}
	}

	*s = set
	return nil
}

// MarshalYAML writes the set as an ordered mapping
func (s DefinitionSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s {
		value := &yaml.Node{}
		if err := value.Encode(e.Definition); err != nil {
			return nil, err
		}
		value.Style = yaml.FlowStyle
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Property},
			value,
		)
	}
	return node, nil
}

// UnmarshalYAML reads an ordered mapping of definitions
func (s *DefinitionSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &DecodeError{Message: fmt.Sprintf("line %d: expected a mapping", node.Line)}
	}

	set := make(DefinitionSet, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		property := node.Content[i].Value

		var def Definition
		if err := node.Content[i+1].Decode(&def); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Property = property
				return de
			}
			return &DecodeError{Property: property, Message: err.Error(), Err: err}
		}
		set = set.Merge(DefinitionSet{{Property: property, Definition: def}})
	}

	*s = set
	return nil
}
