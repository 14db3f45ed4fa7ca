package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/tracksync/internal/config"
	"github.com/genricoloni/tracksync/internal/domain"
	"github.com/genricoloni/tracksync/internal/engine"
	"github.com/genricoloni/tracksync/internal/mpris"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the dependency graph of the daemon
var AppOptions = fx.Options(
	fx.Provide(
		newFlagSet,
		newLogger,
		fx.Annotate(config.NewAppConfig, fx.As(new(domain.Config))),
		fx.Annotate(mpris.NewRouter, fx.As(new(domain.PlayerBus))),
		fx.Annotate(engine.NewEngine, fx.As(new(domain.Engine))),
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(
		// Logger configuration
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),

		AppOptions,
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newFlagSet registers and parses the command line flags
func newFlagSet() (*pflag.FlagSet, error) {
	fs := pflag.NewFlagSet("tracksync", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}
	return fs, nil
}

// newLogger creates a production logger, or a development one with --debug
func newLogger(fs *pflag.FlagSet) (*zap.Logger, error) {
	debug, _ := fs.GetBool(config.FlagDebug)
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// registerHooks ties the engine to the application lifecycle
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, eng domain.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := eng.Start(ctx); err != nil {
				return err
			}
			logger.Info("Tracksync Daemon Started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			return eng.Stop(ctx)
		},
	})
}
