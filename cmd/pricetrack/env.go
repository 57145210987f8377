package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/ghuser/pricetrack/pkg/app"
	"github.com/ghuser/pricetrack/pkg/config"
	"github.com/ghuser/pricetrack/pkg/logger"
	grocerySvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
	"github.com/ghuser/pricetrack/services/grocery/domain"
)

// env is shared by every command. Tables go to out; logs and errors go
// to errOut.
type env struct {
	out        io.Writer
	errOut     io.Writer
	loadConfig func() (*config.Config, error)
}

type session struct {
	cfg  *config.Config
	log  logger.Logger
	app  *app.Application
	svcs *grocerySvcs.Services
}

func (s *session) Close() {
	if err := s.app.Close(); err != nil {
		s.log.Warn("failed to release storage", "error", err)
	}
}

func (e *env) config() (*config.Config, logger.Logger, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewWithWriter(cfg, e.errOut), nil
}

// open connects to the configured storage and loads the collection.
func (e *env) open(ctx context.Context) (*session, error) {
	cfg, log, err := e.config()
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	svcs, err := grocerySvcs.NewStore(ctx, a)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	return &session{cfg: cfg, log: log, app: a, svcs: svcs}, nil
}

// fail reports err and maps it to an exit status. Rejected input is a usage
// error.
func (e *env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(e.errOut, "Error: %v\n", err)
	switch {
	case errors.Is(err, domain.ErrInvalidItemName),
		errors.Is(err, domain.ErrInvalidStoreName),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidWindow):
		return subcommands.ExitUsageError
	default:
		return subcommands.ExitFailure
	}
}

func (e *env) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.errOut, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
