package mapper

import (
	"github.com/viant/jmapper/config"
	"github.com/viant/jmapper/plugin"
)

// Hook customizes mapper construction per consumer.
// Implementations embed DefaultHook and override the points they need.
type Hook interface {
	NewMapper(id ID, encoding Encoding) *Builder
	OverrideSerializationFeatures(id ID, features config.Features) config.Features
	OverrideDeserializationFeatures(id ID, features config.Features) config.Features
	OverrideModules(id ID, plugins []plugin.Plugin) []plugin.Plugin
}

// DefaultHook passes construction decisions through unchanged
type DefaultHook struct{}

func (DefaultHook) NewMapper(id ID, encoding Encoding) *Builder {
	return NewBuilder(id, encoding)
}

func (DefaultHook) OverrideSerializationFeatures(id ID, features config.Features) config.Features {
	return features
}

func (DefaultHook) OverrideDeserializationFeatures(id ID, features config.Features) config.Features {
	return features
}

func (DefaultHook) OverrideModules(id ID, plugins []plugin.Plugin) []plugin.Plugin {
	return plugins
}
