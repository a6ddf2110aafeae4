package plugin

import (
	"reflect"
	"unsafe"

	"github.com/francoispqt/gojay"
	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// GojayName is the catalog token of the gojay bridge plugin
const GojayName = "gojay"

var (
	gojayMarshalerType   = reflect2.TypeOfPtr((*gojay.MarshalerJSONObject)(nil)).Elem()
	gojayUnmarshalerType = reflect2.TypeOfPtr((*gojay.UnmarshalerJSONObject)(nil)).Elem()
)

// Gojay encodes and decodes structs implementing gojay object interfaces with gojay
type Gojay struct {
	jsoniter.DummyExtension
}

func (g *Gojay) Name() string {
	return GojayName
}

func (g *Gojay) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	if typ.Kind() != reflect.Struct || !reflect2.PtrTo(typ).Implements(gojayMarshalerType) {
		return nil
	}
	return &gojayEncoder{valType: typ}
}

func (g *Gojay) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if typ.Kind() != reflect.Struct || !reflect2.PtrTo(typ).Implements(gojayUnmarshalerType) {
		return nil
	}
	return &gojayDecoder{valType: typ}
}

type gojayEncoder struct {
	valType reflect2.Type
}

func (e *gojayEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	value := e.valType.PackEFace(ptr).(gojay.MarshalerJSONObject)
	data, err := gojay.MarshalJSONObject(value)
	if err != nil {
		stream.Error = err
		return
	}
	_, _ = stream.Write(data)
}

func (e *gojayEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return false
}

type gojayDecoder struct {
	valType reflect2.Type
}

func (d *gojayDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		return
	}
	data := iter.SkipAndReturnBytes()
	if iter.Error != nil {
		return
	}
	value := d.valType.PackEFace(ptr).(gojay.UnmarshalerJSONObject)
	if err := gojay.UnmarshalJSONObject(data, value); err != nil {
		iter.ReportError("gojay", err.Error())
	}
}

// NewGojay creates a gojay bridge plugin
func NewGojay() *Gojay {
	return &Gojay{}
}
