package mapper

import (
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/viant/jmapper/config"
	"github.com/viant/jmapper/plugin"
)

// Builder holds a mapper under construction; it is not safe for concurrent use.
type Builder struct {
	id              ID
	encoding        Encoding
	config          jsoniter.Config
	allFields       bool
	serialization   config.Features
	deserialization config.Features
	plugins         []plugin.Plugin
}

// ID returns consumer identifier
func (b *Builder) ID() ID {
	return b.id
}

// Encoding returns selected encoding
func (b *Builder) Encoding() Encoding {
	return b.encoding
}

// Configure sets a named toggle
func (b *Builder) Configure(kind FeatureKind, name string, enabled bool) error {
	apply, ok := toggles[kind][name]
	if !ok {
		return errors.Errorf("unknown %v feature: %v", kind, name)
	}
	apply(&b.config, enabled)
	feature := config.Feature{Name: name, Enabled: enabled}
	if kind == Serialization {
		b.serialization = append(b.serialization, feature)
	} else {
		b.deserialization = append(b.deserialization, feature)
	}
	return nil
}

// TagKey sets struct tag key used for property names
func (b *Builder) TagKey(key string) *Builder {
	b.config.TagKey = key
	return b
}

// Register appends a plugin, later plugins take precedence in descriptor updates
func (b *Builder) Register(p plugin.Plugin) {
	b.plugins = append(b.plugins, p)
}

// Plugins returns registered plugin names
func (b *Builder) Plugins() []string {
	return plugin.Names(b.plugins)
}

func (b *Builder) exposeAllFields() {
	b.allFields = true
	b.config.OnlyTaggedField = false
}

// Build freezes the builder state into a read-only mapper
func (b *Builder) Build() *Mapper {
	api := b.config.Froze()
	tagKey := b.config.TagKey
	if tagKey == "" {
		tagKey = plugin.DefaultTagKey
	}
	if b.allFields {
		api.RegisterExtension(&fieldVisibility{tagKey: tagKey})
	}
	for _, p := range b.plugins {
		if keyed, ok := p.(plugin.TagKeyed); ok {
			p = keyed.WithTagKey(tagKey)
		}
		api.RegisterExtension(p)
	}
	return &Mapper{
		id:              b.id,
		buildID:         uuid.New().String(),
		encoding:        b.encoding,
		api:             api,
		plugins:         plugin.Names(b.plugins),
		serialization:   b.serialization.Clone(),
		deserialization: b.deserialization.Clone(),
	}
}

// NewBuilder creates a builder with encoding/json compatible defaults and no plugins
func NewBuilder(id ID, encoding Encoding) *Builder {
	return &Builder{
		id:       id,
		encoding: encoding,
		config: jsoniter.Config{
			EscapeHTML:             true,
			SortMapKeys:            true,
			ValidateJsonRawMessage: true,
		},
	}
}
