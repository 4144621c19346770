// Package shell is the interactive front end: a line-oriented loop that
// drives the ui router and prints the active view after every command.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/aanand-mishra/students-client/internal/form"
	"github.com/aanand-mishra/students-client/internal/service"
	"github.com/aanand-mishra/students-client/internal/ui"
)

// Prompt is printed before every command line.
const Prompt = "students> "

// errExit stops the loop.
var errExit = errors.New("exit")

// Shell reads commands and dispatches them to the active view.
type Shell struct {
	router  *ui.Router
	in      *bufio.Reader
	out     *syncWriter
	log     *slog.Logger
	history *History

	busy atomic.Bool  // a command is running
	navs atomic.Int64 // completed navigations
}

// New returns a shell reading from in and writing to out. It installs
// itself as the router's change listener.
func New(router *ui.Router, in io.Reader, out io.Writer, log *slog.Logger) *Shell {
	if log == nil {
		log = slog.Default()
	}
	s := &Shell{
		router:  router,
		in:      bufio.NewReader(in),
		out:     &syncWriter{w: out},
		log:     log,
		history: NewHistory(DefaultHistorySize),
	}
	router.OnChange(s.changed)
	return s
}

// Confirm asks a yes/no question on the shell's own input. Anything but
// y or yes is a no.
func (s *Shell) Confirm(prompt string) bool {
	s.printf("%s [y/N] ", prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		s.printf("\n")
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Run opens start and then reads commands until exit, quit or end of
// input.
func (s *Shell) Run(ctx context.Context, start string) error {
	if start == "" {
		start = ui.PathList
	}
	s.printf("Student records. Type \"help\" for commands.\n")

	s.busy.Store(true)
	s.router.Navigate(start)
	s.busy.Store(false)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		s.printf("%s", Prompt)

		line, err := s.in.ReadString('\n')
		if err == io.EOF && line == "" {
			s.printf("\n")
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.history.Add(line)

		if err := s.execute(ctx, line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			s.report(err)
		}
	}
}

// History returns the commands entered so far, oldest first.
func (s *Shell) History() []string { return s.history.Entries() }

func (s *Shell) execute(ctx context.Context, line string) error {
	s.busy.Store(true)
	defer s.busy.Store(false)

	before := s.navs.Load()
	name, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	cmd, ok := lookup(name)
	if !ok {
		if hints := suggest(name); len(hints) > 0 {
			return fmt.Errorf("unknown command %q, did you mean: %s", name, strings.Join(hints, ", "))
		}
		return fmt.Errorf("unknown command %q, type \"help\" for a list", name)
	}

	err := cmd.run(ctx, s, args)

	// Navigations render themselves; otherwise show the updated view.
	if s.navs.Load() == before && cmd.rerender {
		s.render()
	}
	return err
}

func (s *Shell) changed(_ ui.Route, v ui.View) {
	s.navs.Add(1)
	s.renderView(v)
	if !s.busy.Load() {
		// Delayed redirect: the user is sitting at a prompt.
		s.printf("%s", Prompt)
	}
}

func (s *Shell) render() {
	_, v := s.router.Current()
	s.renderView(v)
}

func (s *Shell) renderView(v ui.View) {
	if v == nil {
		return
	}
	s.out.mu.Lock()
	defer s.out.mu.Unlock()
	_, _ = io.WriteString(s.out.w, "\n")
	if err := v.Render(s.out.w); err != nil {
		s.log.Error("render failed", slog.String("error", err.Error()))
	}
}

func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, ui.ErrCancelled):
		s.printf("Cancelled.\n")
	case errors.Is(err, form.ErrInvalid):
		s.printf("Please fix the highlighted fields.\n")
	default:
		s.printf("Error: %s\n", service.Message(err))
	}
}

func (s *Shell) printf(format string, args ...any) {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()
	_, _ = fmt.Fprintf(s.out.w, format, args...)
}

// current returns the active view as T.
func current[T any](s *Shell) (T, bool) {
	_, v := s.router.Current()
	t, ok := v.(T)
	return t, ok
}

func parseID(arg string) (int64, error) {
	if arg == "" {
		return 0, errors.New("missing student id")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid student id %q", arg)
	}
	return id, nil
}

// syncWriter serializes writes from the loop and from redirect timers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}
