package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
)

// Flags are the persistent command line overrides of the config file.
type Flags struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Store      string
}

// App carries what every command needs: configuration, logger and the
// resources that must be released on exit.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	closers []io.Closer
}

// Bootstrap loads the configuration and builds the logger.
func Bootstrap(f Flags) (*App, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.LogFile = f.LogFile
	}
	if f.Store != "" {
		cfg.Store.Driver = f.Store
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg}
	if cfg.LogFile == "" {
		app.Logger = logging.New(level)
		return app, nil
	}

	logger, closer, err := logging.NewWithFile(level, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	app.Logger = logger
	app.closers = append(app.closers, closer)
	return app, nil
}

// OpenStore opens the program store selected by the configuration.
// Every driver validates programs before saving them and serves the
// built-in catalog for names it does not hold.
func (a *App) OpenStore() (ports.ProgramStore, error) {
	store, err := a.openDriver()
	if err != nil {
		return nil, err
	}
	return middleware.Chain(store,
		middleware.NewLoggingMiddleware(a.Logger),
		middleware.NewValidationMiddleware(),
		middleware.NewFallbackMiddleware(registry.Builtin()),
	), nil
}

func (a *App) openDriver() (ports.ProgramStore, error) {
	sc := a.Config.Store
	switch sc.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverFile:
		return file.New(sc.Path), nil
	case config.DriverRedis:
		ttl, err := sc.Redis.Expiry()
		if err != nil {
			return nil, err
		}
		store := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB,
			redis.WithPrefix(sc.Redis.Prefix),
			redis.WithTTL(ttl),
		)
		a.closers = append(a.closers, store)
		return store, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", sc.Driver)
}

// Engine builds an engine over store with the configured step limit.
func (a *App) Engine(store ports.ProgramStore, hooks ...domain.LifecycleHooks) *turing.Engine {
	return turing.New(
		turing.WithStore(store),
		turing.WithLogger(a.Logger),
		turing.WithMaxSteps(a.Config.MaxSteps),
		turing.WithLifecycleHooks(domain.ChainHooks(hooks...)),
	)
}

// Close releases the log file and store connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
