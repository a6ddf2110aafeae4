package mapper

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/viant/jmapper/config"
)

// ID identifies a mapper consumer
type ID int

// Mapper converts between Go values and the configured encoding.
// A mapper is immutable and safe for concurrent use.
type Mapper struct {
	id              ID
	buildID         string
	encoding        Encoding
	api             jsoniter.API
	plugins         []string
	serialization   config.Features
	deserialization config.Features
}

// ID returns consumer identifier
func (m *Mapper) ID() ID {
	return m.id
}

// BuildID returns unique build identifier
func (m *Mapper) BuildID() string {
	return m.buildID
}

// Encoding returns mapper encoding
func (m *Mapper) Encoding() Encoding {
	return m.encoding
}

// Plugins returns registered plugin names in registration order
func (m *Mapper) Plugins() []string {
	result := make([]string, len(m.plugins))
	copy(result, m.plugins)
	return result
}

// Features returns toggles applied at construction
func (m *Mapper) Features(kind FeatureKind) config.Features {
	if kind == Serialization {
		return m.serialization.Clone()
	}
	return m.deserialization.Clone()
}

// Marshal encodes value
func (m *Mapper) Marshal(value interface{}) ([]byte, error) {
	data, err := m.api.Marshal(value)
	if err != nil {
		return nil, errors.Wrapf(err, "mapper %v: failed to marshal %T", m.id, value)
	}
	switch m.encoding.kind {
	case TextEncoding:
		return data, nil
	case BinaryEncoding:
		return m.encoding.encode(data)
	}
	return nil, errors.Errorf("mapper %v: unsupported encoding kind %v", m.id, m.encoding.kind)
}

// MarshalToString encodes value as text, binary encodings are rejected
func (m *Mapper) MarshalToString(value interface{}) (string, error) {
	if m.encoding.kind != TextEncoding {
		return "", errors.Errorf("mapper %v: %v is not a text encoding", m.id, m.encoding)
	}
	data, err := m.Marshal(value)
	return string(data), err
}

// Unmarshal decodes data into target pointer
func (m *Mapper) Unmarshal(data []byte, target interface{}) error {
	switch m.encoding.kind {
	case TextEncoding:
	case BinaryEncoding:
		var err error
		if data, err = m.encoding.decode(data); err != nil {
			return errors.Wrapf(err, "mapper %v", m.id)
		}
	default:
		return errors.Errorf("mapper %v: unsupported encoding kind %v", m.id, m.encoding.kind)
	}
	if err := m.api.Unmarshal(data, target); err != nil {
		return errors.Wrapf(err, "mapper %v: failed to unmarshal into %T", m.id, target)
	}
	return nil
}

// Valid returns true if data is a well formed document in mapper encoding
func (m *Mapper) Valid(data []byte) bool {
	switch m.encoding.kind {
	case TextEncoding:
		return m.api.Valid(data)
	case BinaryEncoding:
		_, err := m.encoding.decode(data)
		return err == nil
	}
	return false
}
