package plugin

import (
	"reflect"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// UnixTimeName is the catalog token of the epoch milliseconds time plugin
const UnixTimeName = "unix-time"

var timeType = reflect.TypeOf(time.Time{})

// UnixTime encodes time.Time as milliseconds since epoch
type UnixTime struct {
	jsoniter.DummyExtension
	codec *unixTimeCodec
}

func (u *UnixTime) Name() string {
	return UnixTimeName
}

func (u *UnixTime) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	if typ.Type1() != timeType {
		return nil
	}
	return u.codec
}

func (u *UnixTime) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if typ.Type1() != timeType {
		return nil
	}
	return u.codec
}

type unixTimeCodec struct{}

func (c *unixTimeCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	ts := *((*time.Time)(ptr))
	stream.WriteInt64(ts.UnixMilli())
}

func (c *unixTimeCodec) IsEmpty(ptr unsafe.Pointer) bool {
	return ((*time.Time)(ptr)).IsZero()
}

func (c *unixTimeCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		*((*time.Time)(ptr)) = time.Time{}
		return
	}
	*((*time.Time)(ptr)) = time.UnixMilli(iter.ReadInt64()).UTC()
}

// NewUnixTime creates epoch milliseconds time plugin
func NewUnixTime() *UnixTime {
	return &UnixTime{codec: &unixTimeCodec{}}
}
