// Package app contains the application setup for the sweet shop.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/abgdnv/sweetshop/internal/config"
	"github.com/abgdnv/sweetshop/internal/sweet/service"
	"github.com/abgdnv/sweetshop/internal/sweet/shell"
	"github.com/abgdnv/sweetshop/internal/sweet/store"
)

type Dependencies struct {
	SweetService service.SweetService
	Logger       *slog.Logger
}

// SetupDependencies builds the in-memory inventory and loads the configured seed sweets into it.
func SetupDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	sService := service.NewService(store.NewInMemoryStore())

	if err := seed(ctx, sService, cfg.SeedSweets()); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "inventory ready", slog.Int("sweets", sService.Size(ctx)))

	return &Dependencies{
		SweetService: sService,
		Logger:       logger,
	}, nil
}

// SetupShell creates the interactive menu over the dependencies.
func SetupShell(deps *Dependencies, cfg *config.Config, in io.Reader, out io.Writer) *shell.Shell {
	return shell.New(deps.SweetService, in, out, deps.Logger, shell.Options{
		Currency: cfg.Shell.Currency,
		Pause:    cfg.Shell.Pause,
	})
}

func seed(ctx context.Context, svc service.SweetService, sweets []config.SeedSweet) error {
	for _, s := range sweets {
		id := s.ID
		_, err := svc.Create(ctx, service.SweetCreateDto{
			ID:       &id,
			Name:     s.Name,
			Category: s.Category,
			Price:    s.Price,
			Quantity: s.Quantity,
		})
		if err != nil {
			return fmt.Errorf("failed to seed sweet %d: %w", s.ID, err)
		}
	}
	return nil
}
