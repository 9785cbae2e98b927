package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// errInputClosed is returned by the prompts once the input stream is exhausted.
var errInputClosed = errors.New("input closed")

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// lineReader feeds lines from r through a channel so that a prompt can also
// wait on context cancellation.
type lineReader struct {
	lines <-chan string
	done  chan struct{}
	// err is set before lines is closed.
	err error
}

func newLineReader(r io.Reader) *lineReader {
	lines := make(chan string)
	reader := &lineReader{lines: lines, done: make(chan struct{})}
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-reader.done:
				return
			}
		}
		reader.err = scanner.Err()
	}()
	return reader
}

// next blocks until a line arrives, the input ends or ctx is done.
// A failed read is returned instead of errInputClosed.
func (r *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			if r.err != nil {
				return "", fmt.Errorf("failed to read input: %w", r.err)
			}
			return "", errInputClosed
		}
		return line, nil
	}
}

func (r *lineReader) close() {
	close(r.done)
}

// prompt prints label and returns the next line, trimmed.
func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.next(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt re-prompts until the user enters a whole number.
func (s *Shell) promptInt(ctx context.Context, label string) (int, error) {
	for {
		text, err := s.prompt(ctx, label)
		if err != nil {
			return 0, err
		}
		value, convErr := strconv.Atoi(text)
		if convErr == nil {
			return value, nil
		}
		s.rejectNumber(ctx, text)
	}
}

// promptFloat re-prompts until the user enters a finite number.
func (s *Shell) promptFloat(ctx context.Context, label string) (float64, error) {
	for {
		text, err := s.prompt(ctx, label)
		if err != nil {
			return 0, err
		}
		if value, ok := parseFinite(text); ok {
			return value, nil
		}
		s.rejectNumber(ctx, text)
	}
}

// promptOptionalFloat is promptFloat that also accepts an empty line as "no value".
func (s *Shell) promptOptionalFloat(ctx context.Context, label string) (*float64, error) {
	for {
		text, err := s.prompt(ctx, label)
		if err != nil {
			return nil, err
		}
		if text == "" {
			return nil, nil
		}
		if value, ok := parseFinite(text); ok {
			return &value, nil
		}
		s.rejectNumber(ctx, text)
	}
}

func (s *Shell) rejectNumber(ctx context.Context, text string) {
	s.logger.WarnContext(ctx, "invalid number entered", slog.String("input", text))
	fmt.Fprintln(s.out, "❌ Please enter a valid number.")
}

func parseFinite(text string) (float64, bool) {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
