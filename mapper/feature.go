package mapper

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

// FeatureKind tells serialization toggles from deserialization ones
type FeatureKind int

const (
	Serialization FeatureKind = iota
	Deserialization
)

func (k FeatureKind) String() string {
	if k == Serialization {
		return "serialization"
	}
	return "deserialization"
}

const (
	EscapeHTML             = "ESCAPE_HTML"
	SortMapKeys            = "SORT_MAP_KEYS"
	IndentOutput           = "INDENT_OUTPUT"
	WriteFloatsWith6Digits = "WRITE_FLOATS_WITH_6_DIGITS"
	ValidateRawMessage     = "VALIDATE_RAW_MESSAGE"

	UseNumber               = "USE_NUMBER"
	FailOnUnknownProperties = "FAIL_ON_UNKNOWN_PROPERTIES"
	CaseSensitiveProperties = "CASE_SENSITIVE_PROPERTIES"
	SimpleFieldNames        = "SIMPLE_FIELD_NAMES"

	indentStep = 2
)

type toggle func(cfg *jsoniter.Config, enabled bool)

var toggles = map[FeatureKind]map[string]toggle{
	Serialization: {
		EscapeHTML:  func(cfg *jsoniter.Config, enabled bool) { cfg.EscapeHTML = enabled },
		SortMapKeys: func(cfg *jsoniter.Config, enabled bool) { cfg.SortMapKeys = enabled },
		IndentOutput: func(cfg *jsoniter.Config, enabled bool) {
			cfg.IndentionStep = 0
			if enabled {
				cfg.IndentionStep = indentStep
			}
		},
		WriteFloatsWith6Digits: func(cfg *jsoniter.Config, enabled bool) { cfg.MarshalFloatWith6Digits = enabled },
		ValidateRawMessage:     func(cfg *jsoniter.Config, enabled bool) { cfg.ValidateJsonRawMessage = enabled },
	},
	Deserialization: {
		UseNumber:               func(cfg *jsoniter.Config, enabled bool) { cfg.UseNumber = enabled },
		FailOnUnknownProperties: func(cfg *jsoniter.Config, enabled bool) { cfg.DisallowUnknownFields = enabled },
		CaseSensitiveProperties: func(cfg *jsoniter.Config, enabled bool) { cfg.CaseSensitive = enabled },
		SimpleFieldNames:        func(cfg *jsoniter.Config, enabled bool) { cfg.ObjectFieldMustBeSimpleString = enabled },
	},
}

// FeatureNames returns sorted toggle names of a kind
func FeatureNames(kind FeatureKind) []string {
	result := make([]string, 0, len(toggles[kind]))
	for name := range toggles[kind] {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
