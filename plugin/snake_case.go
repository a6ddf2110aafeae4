package plugin

import (
	"strings"
	"unicode"

	jsoniter "github.com/json-iterator/go"
)

// SnakeCaseName is the catalog token of the snake case naming plugin
const SnakeCaseName = "snake-case"

// SnakeCase renames untagged exported fields: HelloWorld becomes hello_world
type SnakeCase struct {
	jsoniter.DummyExtension
	tagKey string
}

func (s *SnakeCase) Name() string {
	return SnakeCaseName
}

// WithTagKey returns a copy reading key struct tags
func (s *SnakeCase) WithTagKey(key string) Plugin {
	return &SnakeCase{tagKey: key}
}

func (s *SnakeCase) UpdateStructDescriptor(structDescriptor *jsoniter.StructDescriptor) {
	for _, binding := range structDescriptor.Fields {
		fieldName := binding.Field.Name()
		if unicode.IsLower(rune(fieldName[0])) || fieldName[0] == '_' {
			continue
		}
		if tag, ok := binding.Field.Tag().Lookup(tagKeyOrDefault(s.tagKey)); ok {
			tagName := strings.Split(tag, ",")[0]
			if tagName == "-" || tagName != "" {
				continue
			}
		}
		name := ToSnakeCase(fieldName)
		binding.ToNames = []string{name}
		binding.FromNames = []string{name}
	}
}

// ToSnakeCase converts HelloWorld to hello_world, HTTPServer to http_server
func ToSnakeCase(name string) string {
	runes := []rune(name)
	builder := strings.Builder{}
	builder.Grow(len(name) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					builder.WriteByte('_')
				}
			}
			builder.WriteRune(unicode.ToLower(r))
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

func tagKeyOrDefault(key string) string {
	if key == "" {
		return DefaultTagKey
	}
	return key
}

// NewSnakeCase creates a snake case naming plugin
func NewSnakeCase() *SnakeCase {
	return &SnakeCase{tagKey: DefaultTagKey}
}
