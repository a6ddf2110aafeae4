package service

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/logging"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/viant/gmetric"
	"github.com/viant/jmapper/config"
	"github.com/viant/jmapper/mapper"
	"github.com/viant/jmapper/registry"
	"github.com/viant/jmapper/service/handler"
	"github.com/viant/jmapper/shared"
)

// Service exposes a mapper registry over HTTP
type Service struct {
	config   *config.Config
	registry *registry.Registry
	logger   grip.Journaler
	server   *http.Server
}

// Registry returns service mapper registry
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

// WarmUp builds configured mappers concurrently
func (s *Service) WarmUp() error {
	errs := &shared.Errors{}
	wg := sync.WaitGroup{}
	for _, ref := range s.config.Mappers {
		wg.Add(1)
		go func(ref *config.MapperRef) {
			defer wg.Done()
			errs.Add(s.warmUp(ref))
		}(ref)
	}
	wg.Wait()
	return errs.Resolve()
}

func (s *Service) warmUp(ref *config.MapperRef) error {
	encoding, err := mapper.LookupEncoding(ref.Encoding)
	if err == nil {
		_, err = s.registry.GetOrCreate(mapper.ID(ref.ID), encoding)
	}
	if err != nil {
		s.logger.Error(message.Fields{
			"message": shared.LogPrefix + " failed to warm up mapper",
			"mapper":  ref.ID,
			"error":   err.Error(),
		})
		return errors.Wrapf(err, "failed to warm up mapper %v", ref.ID)
	}
	return nil
}

// Handler returns service endpoints
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(shared.MetricURI, gmetric.NewHandler(shared.MetricURI, s.registry.Metrics()))
	mux.Handle(handler.ConfigURI, handler.NewHandler(s.config))
	mux.HandleFunc(handler.StatusURI, handler.StatusOK)
	mux.Handle(handler.ConvertURI, handler.NewConvert(s.registry))
	return mux
}

// Start serves endpoints until shutdown, it returns immediately when no endpoint is configured
func (s *Service) Start() error {
	if s.server == nil {
		return nil
	}
	s.logger.Info(message.Fields{"message": shared.LogPrefix + " started endpoint", "port": s.config.Endpoint.Port})
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the endpoint
func (s *Service) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// New creates a service, registry options override service defaults
func New(cfg *config.Config, opts ...registry.Option) *Service {
	logger := logging.MakeGrip(grip.GetSender())
	options := append([]registry.Option{registry.WithLogger(logger)}, opts...)
	ret := &Service{
		config:   cfg,
		registry: registry.New(cfg, options...),
		logger:   logger,
	}
	if cfg.Endpoint != nil {
		ret.server = &http.Server{Addr: ":" + strconv.Itoa(cfg.Endpoint.Port), Handler: ret.Handler()}
	}
	return ret
}
