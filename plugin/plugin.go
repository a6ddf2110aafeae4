package plugin

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Plugin represents a named mapper extension
type Plugin interface {
	jsoniter.Extension
	// Name returns the token the plugin is registered under
	Name() string
}

// DefaultTagKey is the struct tag key plugins read unless bound to another one
const DefaultTagKey = "json"

// TagKeyed is implemented by plugins that read struct tags.
// WithTagKey returns a copy bound to key; the receiver is not modified.
type TagKeyed interface {
	WithTagKey(key string) Plugin
}

// New creates a plugin instance
type New func() (Plugin, error)

// Loader resolves plugins by name or discovers all of them
type Loader interface {
	New(name string) (Plugin, error)
	All() ([]Plugin, error)
}

// InstantiationError reports a plugin that could not be created
type InstantiationError struct {
	Name string
	Err  error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate plugin %v: %v", e.Name, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// TypeName returns plugin implementation type name
func TypeName(p Plugin) string {
	return fmt.Sprintf("%T", p)
}

// Names returns plugin names in order
func Names(plugins []Plugin) []string {
	result := make([]string, 0, len(plugins))
	for _, p := range plugins {
		result = append(result, p.Name())
	}
	return result
}
