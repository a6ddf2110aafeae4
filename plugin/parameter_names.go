package plugin

import (
	"encoding"
	"encoding/json"
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// ParameterNamesName is the catalog token of the creator resolution plugin
const ParameterNamesName = "parameter-names"

// CreatorMode controls how structs are bound to JSON values
type CreatorMode int

const (
	// CreatorDelegating binds a single-field struct to the bare value of its field.
	CreatorDelegating CreatorMode = iota
	// CreatorProperties binds every struct by property name.
	CreatorProperties
)

var customCodecTypes = []reflect2.Type{
	reflect2.TypeOfPtr((*json.Marshaler)(nil)).Elem(),
	reflect2.TypeOfPtr((*json.Unmarshaler)(nil)).Elem(),
	reflect2.TypeOfPtr((*encoding.TextMarshaler)(nil)).Elem(),
	reflect2.TypeOfPtr((*encoding.TextUnmarshaler)(nil)).Elem(),
}

// ParameterNames resolves struct creators by field name
type ParameterNames struct {
	jsoniter.DummyExtension
	mode   CreatorMode
	tagKey string
}

func (p *ParameterNames) Name() string {
	return ParameterNamesName
}

// WithTagKey returns a copy reading key struct tags
func (p *ParameterNames) WithTagKey(key string) Plugin {
	return &ParameterNames{mode: p.mode, tagKey: key}
}

// Mode returns creator mode
func (p *ParameterNames) Mode() CreatorMode {
	return p.mode
}

func (p *ParameterNames) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	field := p.delegate(typ)
	if field == nil {
		return nil
	}
	return &delegatingEncoder{field: field}
}

func (p *ParameterNames) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	field := p.delegate(typ)
	if field == nil {
		return nil
	}
	return &delegatingDecoder{field: field}
}

// delegate returns the only bindable field of a struct in delegating mode
func (p *ParameterNames) delegate(typ reflect2.Type) reflect2.StructField {
	if p.mode != CreatorDelegating || typ.Kind() != reflect.Struct {
		return nil
	}
	structType, ok := typ.(reflect2.StructType)
	if !ok {
		return nil
	}
	ptrType := reflect2.PtrTo(typ)
	for _, codecType := range customCodecTypes {
		if ptrType.Implements(codecType) {
			return nil
		}
	}
	var result reflect2.StructField
	count := 0
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Name() == "_" || field.Tag().Get(tagKeyOrDefault(p.tagKey)) == "-" {
			continue
		}
		if field.Anonymous() {
			return nil
		}
		result = field
		count++
	}
	if count != 1 {
		return nil
	}
	return result
}

type delegatingEncoder struct {
	field reflect2.StructField
}

func (e *delegatingEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteVal(e.field.Type().UnsafeIndirect(e.field.UnsafeGet(ptr)))
}

func (e *delegatingEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return false
}

type delegatingDecoder struct {
	field reflect2.StructField
}

func (d *delegatingDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	iter.ReadVal(d.field.Type().PackEFace(d.field.UnsafeGet(ptr)))
}

// NewParameterNames creates a creator resolution plugin
func NewParameterNames(mode CreatorMode) *ParameterNames {
	return &ParameterNames{mode: mode, tagKey: DefaultTagKey}
}
