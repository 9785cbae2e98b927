// Package main runs the interactive sweet shop inventory manager.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/sweetshop/internal/config"
	"github.com/abgdnv/sweetshop/internal/sweet/app"
	"github.com/abgdnv/sweetshop/pkg/bootstrap"
	"github.com/abgdnv/sweetshop/pkg/config/configloader"
	"github.com/abgdnv/sweetshop/pkg/telemetry"
	"golang.org/x/sync/errgroup"
)

const serviceName = "sweetshop"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}

// run loads the configuration, builds the inventory and drives the shell until it exits.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName, config.Defaults())
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}

	logger, closeLog, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)
	logger.Info("Configuration loaded", slog.String("config", cfg.String()))

	tp, err := telemetry.NewTracerProvider(ctx, serviceName, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to create tracer provider: %w", err)
	}

	deps, err := app.SetupDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up dependencies: %w", err)
	}
	sh := app.SetupShell(deps, cfg, os.Stdin, os.Stdout)

	shellCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(shellCtx)

	// Run the shell; leaving the menu ends the application
	g.Go(func() error {
		defer cancel()
		if err := sh.Run(gCtx); err != nil {
			return fmt.Errorf("shell failed: %w", err)
		}
		return nil
	})
	// flush traces once the shell is done or a signal arrives
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down tracer provider...")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancelShutdown()
		return tp.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	logger.Info("application stopped gracefully")
	return nil
}
