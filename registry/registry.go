package registry

import (
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/viant/gmetric"
	"github.com/viant/gmetric/provider"
	"github.com/viant/gmetric/stat"
	"github.com/viant/jmapper/config"
	"github.com/viant/jmapper/mapper"
	"golang.org/x/sync/singleflight"
)

const (
	buildOperation  = "build"
	lookupOperation = "lookup"
)

// Registry caches one mapper per consumer identifier.
// A mapper is built at most once per identifier; failed builds are not cached.
type Registry struct {
	config  *config.Config
	options *Options
	factory *mapper.Factory
	mappers *shards
	group   singleflight.Group
	metrics *gmetric.Service
	build   *gmetric.Operation
	lookup  *gmetric.Operation
}

// GetOrCreate returns the published mapper for id, building it on the first call.
// Concurrent first callers block until the single build completes.
func (r *Registry) GetOrCreate(id mapper.ID, encoding mapper.Encoding) (*mapper.Mapper, error) {
	stats := stat.New()
	onDone := r.lookup.Begin(time.Now())
	defer func() {
		onDone(time.Now(), stats)
	}()
	if m, ok := r.mappers.get(id); ok {
		return m, nil
	}
	value, err, _ := r.group.Do(strconv.Itoa(int(id)), func() (interface{}, error) {
		if m, ok := r.mappers.get(id); ok {
			return m, nil
		}
		m, err := r.create(id, encoding)
		if err != nil {
			return nil, err
		}
		return r.mappers.putIfAbsent(id, m), nil
	})
	if err != nil {
		stats.Append(err)
		return nil, err
	}
	return value.(*mapper.Mapper), nil
}

// Create builds a new mapper for id without publishing it.
func (r *Registry) Create(id mapper.ID, encoding mapper.Encoding) (*mapper.Mapper, error) {
	return r.create(id, encoding)
}

func (r *Registry) create(id mapper.ID, encoding mapper.Encoding) (*mapper.Mapper, error) {
	stats := stat.New()
	onDone := r.build.Begin(time.Now())
	defer func() {
		onDone(time.Now(), stats)
	}()
	m, err := r.factory.Build(id, encoding, r.config, r.options.Hook())
	if err != nil {
		stats.Append(err)
		return nil, errors.Wrapf(err, "failed to build mapper %v", id)
	}
	return m, nil
}

// Get returns a published mapper
func (r *Registry) Get(id mapper.ID) (*mapper.Mapper, bool) {
	return r.mappers.get(id)
}

// Len returns number of published mappers
func (r *Registry) Len() int {
	return r.mappers.len()
}

// IDs returns sorted identifiers of published mappers
func (r *Registry) IDs() []mapper.ID {
	result := r.mappers.ids()
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Metrics returns registry metrics
func (r *Registry) Metrics() *gmetric.Service {
	return r.metrics
}

// New creates a registry for the configuration snapshot
func New(cfg *config.Config, opts ...Option) *Registry {
	if cfg == nil {
		cfg = &config.Config{}
	}
	options := NewOptions(opts...)
	ret := &Registry{
		config:  cfg,
		options: options,
		factory: mapper.NewFactory(options.loader, options.logger),
		mappers: newShards(options.GetShardCount()),
		metrics: options.metrics,
	}
	if ret.metrics == nil {
		ret.metrics = gmetric.New()
	}
	pkg := reflect.TypeOf(ret).Elem().PkgPath()
	ret.build = ret.metrics.MultiOperationCounter(pkg, buildOperation, "mapper build operation", time.Microsecond, time.Minute, 2, provider.NewBasic())
	ret.lookup = ret.metrics.MultiOperationCounter(pkg, lookupOperation, "mapper lookup operation", time.Microsecond, time.Minute, 2, provider.NewBasic())
	return ret
}
