package mapper

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
)

// EncodingKind distinguishes the default text encoding from alternate binary ones
type EncodingKind int

const (
	// TextEncoding is the default JSON text encoding
	TextEncoding EncodingKind = iota
	// BinaryEncoding re-encodes the JSON document with a codec handle
	BinaryEncoding
)

func (k EncodingKind) String() string {
	switch k {
	case TextEncoding:
		return "text"
	case BinaryEncoding:
		return "binary"
	}
	return "unknown"
}

// Encoding selects the wire format of a mapper; the zero value is JSON.
type Encoding struct {
	kind   EncodingKind
	format string
	handle codec.Handle
}

var (
	// JSON is the default text encoding
	JSON = Encoding{kind: TextEncoding, format: "json"}
	// CBOR is RFC 8949 binary encoding
	CBOR = NewBinaryEncoding("cbor", newCborHandle())
	// MessagePack is msgpack binary encoding
	MessagePack = NewBinaryEncoding("msgpack", newMsgpackHandle())

	treeMapType = reflect.TypeOf(map[string]interface{}(nil))
	treeAPI     = jsoniter.Config{UseNumber: true, SortMapKeys: true}.Froze()
)

// Kind returns encoding kind
func (e Encoding) Kind() EncodingKind {
	return e.kind
}

// Format returns encoding format name
func (e Encoding) Format() string {
	if e.format == "" && e.kind == TextEncoding {
		return JSON.format
	}
	return e.format
}

func (e Encoding) String() string {
	return e.Format()
}

// IsDefault returns true for the default text encoding
func (e Encoding) IsDefault() bool {
	return e.kind == TextEncoding
}

func (e Encoding) validate() error {
	switch e.kind {
	case TextEncoding:
		return nil
	case BinaryEncoding:
		if e.handle == nil {
			return errors.Errorf("binary encoding %q has no codec handle", e.format)
		}
		return nil
	}
	return errors.Errorf("unsupported encoding kind: %d", e.kind)
}

// encode converts a JSON document into the binary format
func (e Encoding) encode(data []byte) ([]byte, error) {
	var tree interface{}
	if err := treeAPI.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrap(err, "failed to read JSON tree")
	}
	tree, err := normalize(tree)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %v", e.format)
	}
	var result []byte
	if err := codec.NewEncoderBytes(&result, e.handle).Encode(tree); err != nil {
		return nil, errors.Wrapf(err, "failed to encode %v", e.format)
	}
	return result, nil
}

// decode converts binary format data into a JSON document
func (e Encoding) decode(data []byte) ([]byte, error) {
	var tree interface{}
	if err := codec.NewDecoderBytes(data, e.handle).Decode(&tree); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %v", e.format)
	}
	result, err := treeAPI.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write JSON tree")
	}
	return result, nil
}

// normalize replaces json.Number with int64, uint64 or float64.
// Integers outside the uint64 and int64 range are rejected rather than rounded.
func normalize(value interface{}) (interface{}, error) {
	var err error
	switch actual := value.(type) {
	case json.Number:
		return normalizeNumber(actual)
	case map[string]interface{}:
		for k, v := range actual {
			if actual[k], err = normalize(v); err != nil {
				return nil, err
			}
		}
	case []interface{}:
		for i, v := range actual {
			if actual[i], err = normalize(v); err != nil {
				return nil, err
			}
		}
	}
	return value, nil
}

func normalizeNumber(number json.Number) (interface{}, error) {
	literal := number.String()
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return u, nil
	}
	if !strings.ContainsAny(literal, ".eE") {
		return nil, errors.Errorf("integer %v overflows 64 bits", literal)
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid number %v", literal)
	}
	return f, nil
}

// NewBinaryEncoding creates an alternate encoding backed by codec handle
func NewBinaryEncoding(format string, handle codec.Handle) Encoding {
	return Encoding{kind: BinaryEncoding, format: format, handle: handle}
}

// LookupEncoding returns a predefined encoding by format name, empty name is JSON
func LookupEncoding(format string) (Encoding, error) {
	switch format {
	case "", JSON.format:
		return JSON, nil
	case CBOR.format:
		return CBOR, nil
	case MessagePack.format:
		return MessagePack, nil
	}
	return Encoding{}, errors.Errorf("unsupported encoding: %v", format)
}

func newCborHandle() *codec.CborHandle {
	handle := &codec.CborHandle{}
	handle.MapType = treeMapType
	handle.Canonical = true
	return handle
}

func newMsgpackHandle() *codec.MsgpackHandle {
	handle := &codec.MsgpackHandle{}
	handle.MapType = treeMapType
	handle.Canonical = true
	handle.WriteExt = true
	handle.RawToString = true
	return handle
}
