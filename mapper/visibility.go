package mapper

import (
	"strings"
	"unicode"

	jsoniter "github.com/json-iterator/go"
)

// fieldVisibility binds unexported struct fields, so structs are mapped by field shape
type fieldVisibility struct {
	jsoniter.DummyExtension
	tagKey string
}

func (f *fieldVisibility) UpdateStructDescriptor(structDescriptor *jsoniter.StructDescriptor) {
	for _, binding := range structDescriptor.Fields {
		fieldName := binding.Field.Name()
		if !unicode.IsLower(rune(fieldName[0])) && fieldName[0] != '_' {
			continue
		}
		name := fieldName
		if tag, ok := binding.Field.Tag().Lookup(f.tagKey); ok {
			if tag == "-" {
				continue
			}
			if tagName := strings.Split(tag, ",")[0]; tagName != "" {
				name = tagName
			}
		}
		binding.FromNames = []string{name}
		binding.ToNames = []string{name}
	}
}
