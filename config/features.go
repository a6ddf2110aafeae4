package config

import (
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/mongodb/grip"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

type (
	// Feature represents a named encode or decode toggle
	Feature struct {
		Name    string
		Enabled bool
	}

	// Features is an ordered toggle set; order follows the configuration document.
	Features []Feature
)

// Lookup returns the last value set for a toggle name
func (f Features) Lookup(name string) (bool, bool) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i].Name == name {
			return f[i].Enabled, true
		}
	}
	return false, false
}

// Names returns toggle names in order
func (f Features) Names() []string {
	result := make([]string, 0, len(f))
	for _, feature := range f {
		result = append(result, feature.Name)
	}
	return result
}

// Clone returns a copy that can be modified independently
func (f Features) Clone() Features {
	if f == nil {
		return nil
	}
	return append(Features(nil), f...)
}

func (f Features) validate(section string) error {
	catcher := grip.NewBasicCatcher()
	for i, feature := range f {
		catcher.ErrorfWhen(feature.Name == "", "%s[%d]: toggle name was empty", section, i)
	}
	return catcher.Resolve()
}

// UnmarshalYAML decodes a toggle mapping preserving key order
func (f *Features) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*f = nil
			return nil
		}
		fallthrough
	default:
		return fmt.Errorf("expected toggle mapping at line %d, got %v", node.Line, node.Tag)
	}

	result := make(Features, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return err
		}
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		if value == nil {
			return fmt.Errorf("toggle %v at line %d has no value", name, node.Content[i+1].Line)
		}
		enabled, err := parseToggle(value)
		if err != nil {
			return fmt.Errorf("toggle %v at line %d: %w", name, node.Content[i+1].Line, err)
		}
		result = append(result, Feature{Name: name, Enabled: enabled})
	}
	*f = result
	return nil
}

// parseToggle accepts YAML booleans and values strconv.ParseBool understands
func parseToggle(value interface{}) (bool, error) {
	switch actual := value.(type) {
	case bool:
		return actual, nil
	case string, int:
		if enabled, err := strconv.ParseBool(toolbox.AsString(actual)); err == nil {
			return enabled, nil
		}
	}
	return false, fmt.Errorf("invalid boolean value: %v", value)
}

// MarshalJSON encodes toggles as an ordered object
func (f Features) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigDefault.BorrowStream(nil)
	defer jsoniter.ConfigDefault.ReturnStream(stream)
	stream.WriteObjectStart()
	for i, feature := range f {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(feature.Name)
		stream.WriteBool(feature.Enabled)
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// MarshalYAML encodes toggles as an ordered mapping
func (f Features) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, feature := range f {
		key := &yaml.Node{}
		if err := key.Encode(feature.Name); err != nil {
			return nil, err
		}
		value := &yaml.Node{}
		if err := value.Encode(feature.Enabled); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}
