package config

import (
	"context"
	"io"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/jmapper/shared"
	"gopkg.in/yaml.v3"
)

const (
	// Wildcard in Modules asks the loader for every plugin it knows.
	Wildcard = "*"

	defaultPort = 8080
)

type (
	// Config represents a mapper configuration snapshot together with service settings.
	Config struct {
		SerializationFeatures   Features     `yaml:"serialization-features" json:"serialization-features,omitempty"`
		DeserializationFeatures Features     `yaml:"deserialization-features" json:"deserialization-features,omitempty"`
		Modules                 []string     `yaml:"jackson-modules" json:"jackson-modules,omitempty"`
		Mappers                 []*MapperRef `yaml:"mappers" json:"mappers,omitempty"`
		Endpoint                *Endpoint    `yaml:"endpoint" json:"endpoint,omitempty"`
		Debug                   bool         `yaml:"debug" json:"debug,omitempty"`
	}

	// MapperRef names a mapper the service builds on start up.
	MapperRef struct {
		ID       int    `yaml:"id" json:"id"`
		Encoding string `yaml:"encoding" json:"encoding,omitempty"`
	}

	Endpoint struct {
		Port int `yaml:"port" json:"port"`
	}
)

// HasWildcard returns true if modules list asks for plugin discovery
func (c *Config) HasWildcard() bool {
	for _, name := range c.Modules {
		if name == Wildcard {
			return true
		}
	}
	return false
}

// Validate checks the configuration and sets defaults
func (c *Config) Validate() error {
	catcher := grip.NewBasicCatcher()
	for i, name := range c.Modules {
		catcher.ErrorfWhen(name == "", "jackson-modules[%d] was empty", i)
	}
	catcher.Add(c.SerializationFeatures.validate("serialization-features"))
	catcher.Add(c.DeserializationFeatures.validate("deserialization-features"))

	ids := map[int]bool{}
	for i, ref := range c.Mappers {
		if ref == nil {
			catcher.Errorf("mappers[%d] was empty", i)
			continue
		}
		catcher.ErrorfWhen(ids[ref.ID], "duplicate mapper id: %d", ref.ID)
		ids[ref.ID] = true
	}

	if c.Endpoint != nil && c.Endpoint.Port == 0 {
		c.Endpoint.Port = defaultPort
	}
	return catcher.Resolve()
}

// NewConfigFromURL loads configuration from URL
func NewConfigFromURL(ctx context.Context, URL string) (cfg *Config, err error) {
	fs := afs.New()
	reader, err := fs.OpenURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get config: %v", URL)
	}
	defer shared.CloseWithErrorHandling(reader, &err)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config: %v", URL)
	}
	if cfg, err = NewConfig(data); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config: %v", URL)
	}
	return cfg, nil
}

// NewConfig decodes YAML (or JSON) configuration data
func NewConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}
