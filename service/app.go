package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/viant/jmapper/config"
	"github.com/viant/jmapper/registry"
	"github.com/viant/jmapper/shared"
)

const shutdownTimeout = 10 * time.Second

func RunApp(configURL string, opts ...registry.Option) error {
	cfg, err := config.NewConfigFromURL(context.Background(), configURL)
	if err != nil {
		return err
	}
	if cfg.Debug {
		if err = agent.Listen(agent.Options{}); err != nil {
			return errors.Wrap(err, "failed to start gops agent")
		}
		defer agent.Close()
	}
	srv := New(cfg, opts...)
	if err = srv.WarmUp(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go srv.shutDownOnInterrupt(sigCh)

	return srv.Start()
}

func (s *Service) shutDownOnInterrupt(sigCh chan os.Signal) {
	sig := <-sigCh
	s.logger.Info(message.Fields{"message": shared.LogPrefix + " shutting down", "signal": sig.String()})
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		s.logger.Error(message.Fields{"message": shared.LogPrefix + " failed to shut down", "error": err.Error()})
	}
}
