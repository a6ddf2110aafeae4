package plugin

import (
	"fmt"
	"sync"

	"github.com/dolthub/swiss"
	"github.com/pkg/errors"
)

const initialCatalogSize = 16

// ErrNotFound is returned when a plugin name is unknown
var ErrNotFound = errors.New("plugin not found")

// Catalog maps plugin names to constructors; it implements Loader.
type Catalog struct {
	mux   sync.RWMutex
	names []string
	index *swiss.Map[string, New]
}

// Register adds a constructor under name, it panics on empty name, nil constructor or duplicate.
func (c *Catalog) Register(name string, fn New) {
	if name == "" {
		panic("jmapper: empty plugin name")
	}
	if fn == nil {
		panic(fmt.Sprintf("jmapper: nil constructor for plugin %q", name))
	}
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.index.Has(name) {
		panic(fmt.Sprintf("jmapper: duplicate plugin %q", name))
	}
	c.index.Put(name, fn)
	c.names = append(c.names, name)
}

// Lookup returns a constructor by name
func (c *Catalog) Lookup(name string) (New, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.index.Get(name)
}

// Names returns registered names in registration order
func (c *Catalog) Names() []string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return append([]string(nil), c.names...)
}

// Len returns number of registered plugins
func (c *Catalog) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.index.Count()
}

// New instantiates a plugin by name
func (c *Catalog) New(name string) (Plugin, error) {
	fn, ok := c.Lookup(name)
	if !ok {
		return nil, &InstantiationError{Name: name, Err: ErrNotFound}
	}
	p, err := fn()
	if err != nil {
		return nil, &InstantiationError{Name: name, Err: err}
	}
	if p == nil {
		return nil, &InstantiationError{Name: name, Err: errors.New("constructor returned nil")}
	}
	return p, nil
}

// All instantiates every registered plugin in registration order, the first failure aborts discovery.
func (c *Catalog) All() ([]Plugin, error) {
	names := c.Names()
	result := make([]Plugin, 0, len(names))
	for _, name := range names {
		p, err := c.New(name)
		if err != nil {
			return nil, errors.Wrap(err, "plugin discovery failed")
		}
		result = append(result, p)
	}
	return result, nil
}

// Clone returns an independent catalog with the same entries
func (c *Catalog) Clone() *Catalog {
	c.mux.RLock()
	defer c.mux.RUnlock()
	result := NewCatalog()
	for _, name := range c.names {
		fn, _ := c.index.Get(name)
		result.index.Put(name, fn)
		result.names = append(result.names, name)
	}
	return result
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{index: swiss.NewMap[string, New](initialCatalogSize)}
}
