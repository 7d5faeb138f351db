// Package terminal is a line-based chat with the portfolio bot on stdin/stdout.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/usecase"
)

const visitorName = "You"

// Options REPL rendering settings
type Options struct {
	NoColor bool
	Logger  *zap.Logger
}

// REPL reads visitor lines and prints the conversation as it grows
type REPL struct {
	chat   usecase.ChatUseCase
	name   string
	out    io.Writer
	logger *zap.Logger

	subject *color.Color
	visitor *color.Color
	dim     *color.Color
}

// New creates a REPL writing to out
func New(chat usecase.ChatUseCase, kb *entity.KnowledgeBase, out io.Writer, opts Options) *REPL {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &REPL{
		chat:    chat,
		name:    kb.Nickname(),
		out:     out,
		logger:  logger,
		subject: color.New(color.FgCyan, color.Bold),
		visitor: color.New(color.FgGreen),
		dim:     color.New(color.Faint, color.Italic),
	}
	if opts.NoColor {
		r.subject.DisableColor()
		r.visitor.DisableColor()
		r.dim.DisableColor()
	}
	return r
}

// Run prints the current log, then serves lines from in until EOF, /quit or ctx ends
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	msgs, err := r.chat.Messages(ctx)
	if err != nil {
		return fmt.Errorf("failed to read conversation: %w", err)
	}
	for _, m := range msgs {
		r.printMessage(m)
	}
	r.dim.Fprintln(r.out, "(type /quit to leave)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := r.readLines(ctx, in)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if isQuit(line) {
				return nil
			}
			if err := r.turn(ctx, line); err != nil {
				return err
			}
		}
	}
}

// turn submits one line and prints the reply once it lands
func (r *REPL) turn(ctx context.Context, line string) error {
	turn, err := r.chat.Submit(ctx, line)
	switch {
	case errors.Is(err, usecase.ErrEmptyMessage):
		return nil
	case errors.Is(err, usecase.ErrTurnInProgress):
		r.dim.Fprintf(r.out, "%s is still typing…\n", r.name)
		return nil
	case err != nil:
		return err
	}

	r.printMessage(turn.Visitor())
	r.dim.Fprintf(r.out, "%s is typing…\n", r.name)

	reply, err := turn.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		r.logger.Error("reply not saved", zap.Error(err))
	}
	r.printMessage(reply)
	return nil
}

func (r *REPL) printMessage(m entity.Message) {
	name, c := r.name, r.subject
	if m.IsVisitor() {
		name, c = visitorName, r.visitor
	}
	fmt.Fprintf(r.out, "%s %s %s\n", r.dim.Sprintf("[%s]", m.Clock()), c.Sprintf("%s:", name), m.Text)
}

// readLines scans in on its own goroutine so ctx can interrupt a blocked read
func (r *REPL) readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errs <- nil
				return
			}
		}
		errs <- scanner.Err()
	}()

	return lines, errs
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "/quit", "/exit":
		return true
	}
	return false
}
