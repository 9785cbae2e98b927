// Package shell implements the interactive text menu of the sweet shop.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/abgdnv/sweetshop/internal/sweet/service"
	"github.com/abgdnv/sweetshop/pkg/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/abgdnv/sweetshop/internal/sweet/shell"

// Options tune the presentation of the menu.
type Options struct {
	Currency string
	// Pause waits for Enter after each command.
	Pause bool
}

// command is one entry of the main menu.
type command struct {
	name string
	run  func(ctx context.Context) error
}

// Shell reads menu choices from an input stream and prints results to an output stream.
type Shell struct {
	service  service.SweetService
	src      io.Reader
	in       *lineReader
	out      io.Writer
	logger   *slog.Logger
	tracer   trace.Tracer
	opts     Options
	commands map[int]command
}

// New creates a Shell over svc. Run may be called once.
func New(svc service.SweetService, in io.Reader, out io.Writer, log *slog.Logger, opts Options) *Shell {
	s := &Shell{
		service: svc,
		src:     in,
		out:     out,
		logger:  log.With("component", "shell"),
		tracer:  otel.Tracer(tracerName),
		opts:    opts,
	}
	s.commands = map[int]command{
		1: {name: "view", run: s.viewAll},
		2: {name: "add", run: s.addSweet},
		3: {name: "delete", run: s.deleteSweet},
		4: {name: "search", run: s.searchSweets},
		5: {name: "purchase", run: s.purchaseSweet},
		6: {name: "restock", run: s.restockSweet},
		7: {name: "sort", run: s.sortSweets},
		8: {name: "statistics", run: s.showStatistics},
		9: {name: "update", run: s.updateSweet},
	}
	return s
}

// Run shows the menu until the user exits, the input ends or ctx is cancelled.
// Exit and end of input return nil; cancellation returns ctx.Err() and a
// failed read returns the read error.
func (s *Shell) Run(ctx context.Context) error {
	s.in = newLineReader(s.src)
	defer s.in.close()

	s.logger.InfoContext(ctx, "shell started")
	s.printBanner()
	for {
		s.printMenu()
		choice, err := s.promptInt(ctx, "Enter your choice: ")
		if err != nil {
			return s.stop(ctx, err)
		}
		fmt.Fprintln(s.out)

		if choice == 0 {
			fmt.Fprintln(s.out, "Thank you for using Sweet Shop Management System!")
			s.logger.InfoContext(ctx, "shell exited by user")
			return nil
		}
		if err := s.execute(ctx, choice); err != nil {
			return s.stop(ctx, err)
		}

		if s.opts.Pause {
			fmt.Fprintln(s.out, "\nPress Enter to continue...")
			if _, err := s.in.next(ctx); err != nil {
				return s.stop(ctx, err)
			}
		}
	}
}

// execute runs a menu command under its own operation ID and span.
func (s *Shell) execute(ctx context.Context, choice int) error {
	cmd, ok := s.commands[choice]
	if !ok {
		s.logger.WarnContext(ctx, "invalid menu choice", slog.Int("choice", choice))
		fmt.Fprintln(s.out, "❌ Invalid choice. Please try again.")
		return nil
	}

	ctx = logger.WithOperationID(ctx, uuid.NewString())
	ctx, span := s.tracer.Start(ctx, "shell."+cmd.name, trace.WithAttributes(attribute.String("shell.command", cmd.name)))
	defer span.End()

	s.logger.DebugContext(ctx, "command received", slog.String("command", cmd.name))
	return cmd.run(ctx)
}

func (s *Shell) stop(ctx context.Context, err error) error {
	if errors.Is(err, errInputClosed) {
		s.logger.InfoContext(ctx, "input closed, shell exiting")
		fmt.Fprintln(s.out, "\nInput closed. Goodbye!")
		return nil
	}
	if ctx.Err() != nil {
		s.logger.InfoContext(ctx, "shell interrupted", slog.Any("reason", err))
		return err
	}
	s.logger.WarnContext(ctx, "input read failed", slog.Any("error", err))
	s.printError(err)
	return err
}
