package registry

import (
	"github.com/viant/gmetric"
	"github.com/viant/jmapper/mapper"
	"github.com/viant/jmapper/plugin"
)

const defaultShardCount = 16

type (
	Options struct {
		hook       mapper.Hook
		loader     plugin.Loader
		logger     mapper.Logger
		shardCount int
		metrics    *gmetric.Service
	}

	Option func(o *Options)
)

func NewOptions(options ...Option) *Options {
	ret := &Options{shardCount: defaultShardCount}
	ret.Apply(options...)
	return ret
}

// WithHook sets the customization hook used for every build
func WithHook(hook mapper.Hook) Option {
	return func(o *Options) {
		o.hook = hook
	}
}

func WithLoader(loader plugin.Loader) Option {
	return func(o *Options) {
		o.loader = loader
	}
}

func WithLogger(logger mapper.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func WithShardCount(shardCount int) Option {
	return func(o *Options) {
		o.shardCount = shardCount
	}
}

func WithMetrics(metrics *gmetric.Service) Option {
	return func(o *Options) {
		o.metrics = metrics
	}
}

func (o *Options) Apply(opts ...Option) {
	if len(opts) == 0 {
		return
	}
	for _, opt := range opts {
		opt(o)
	}
}

// Hook returns configured hook or DefaultHook
func (o *Options) Hook() mapper.Hook {
	if o.hook == nil {
		return mapper.DefaultHook{}
	}
	return o.hook
}

func (o *Options) GetShardCount() int {
	return o.shardCount
}
