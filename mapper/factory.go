package mapper

import (
	"github.com/mongodb/grip/message"
	"github.com/viant/jmapper/config"
	"github.com/viant/jmapper/plugin"
)

// Factory builds configured mappers, it keeps no state between builds
type Factory struct {
	loader plugin.Loader
	logger Logger
}

// Build constructs a mapper for id; hook defaults to DefaultHook
func (f *Factory) Build(id ID, encoding Encoding, cfg *config.Config, hook Hook) (*Mapper, error) {
	if hook == nil {
		hook = DefaultHook{}
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := encoding.validate(); err != nil {
		return nil, newConfigurationError(id, "invalid encoding", err)
	}
	builder := hook.NewMapper(id, encoding)
	if builder == nil {
		return nil, newConfigurationError(id, "hook returned no mapper", nil)
	}
	builder.exposeAllFields()

	serialization := hook.OverrideSerializationFeatures(id, cfg.SerializationFeatures.Clone())
	if err := f.configure(id, builder, Serialization, serialization); err != nil {
		return nil, err
	}
	deserialization := hook.OverrideDeserializationFeatures(id, cfg.DeserializationFeatures.Clone())
	if err := f.configure(id, builder, Deserialization, deserialization); err != nil {
		return nil, err
	}

	plugins, err := f.resolvePlugins(id, cfg)
	if err != nil {
		return nil, err
	}
	plugins = canonicalize(plugins)
	plugins = hook.OverrideModules(id, plugins)
	for _, p := range plugins {
		builder.Register(p)
		f.logger.Debug(message.Fields{
			"message": "registered plugin",
			"mapper":  int(id),
			"plugin":  p.Name(),
			"type":    plugin.TypeName(p),
		})
	}
	return builder.Build(), nil
}

func (f *Factory) configure(id ID, builder *Builder, kind FeatureKind, features config.Features) error {
	for _, feature := range features {
		if err := builder.Configure(kind, feature.Name, feature.Enabled); err != nil {
			return newConfigurationError(id, "invalid "+kind.String()+" features", err)
		}
	}
	return nil
}

func (f *Factory) resolvePlugins(id ID, cfg *config.Config) ([]plugin.Plugin, error) {
	if cfg.HasWildcard() {
		plugins, err := f.loader.All()
		if err != nil {
			return nil, newConfigurationError(id, "plugin discovery failed", err)
		}
		return plugins, nil
	}
	result := make([]plugin.Plugin, 0, len(cfg.Modules))
	for _, name := range cfg.Modules {
		p, err := f.loader.New(name)
		if err != nil {
			f.logger.Warning(message.Fields{
				"message": "skipping plugin",
				"mapper":  int(id),
				"plugin":  name,
				"error":   err.Error(),
			})
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// canonicalize makes parameter-names resolve every struct by property name.
// The loader's slice is left untouched.
func canonicalize(plugins []plugin.Plugin) []plugin.Plugin {
	result := make([]plugin.Plugin, len(plugins))
	copy(result, plugins)
	for i, p := range result {
		if _, ok := p.(*plugin.ParameterNames); ok {
			result[i] = plugin.NewParameterNames(plugin.CreatorProperties)
		}
	}
	return result
}

// NewFactory creates a factory; nil loader uses builtin plugins, nil logger uses grip.
func NewFactory(loader plugin.Loader, logger Logger) *Factory {
	if loader == nil {
		loader = plugin.Builtin()
	}
	if logger == nil {
		logger = DefaultLogger()
	}
	return &Factory{loader: loader, logger: logger}
}
