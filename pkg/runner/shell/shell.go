// Package shell is a line oriented REPL over a session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"tableflip.dev/unsent/pkg/app"
	"tableflip.dev/unsent/pkg/filter"
	"tableflip.dev/unsent/pkg/printers"
	"tableflip.dev/unsent/pkg/snake"
)

const prompt = "unsent> "

var commands = map[string]string{
	"ls":       "list the archive with the current filter",
	"category": "category <all|prose|poem>",
	"query":    "query <text>, empty clears it",
	"open":     "open <id>",
	"close":    "close the open entry",
	"unsent":   "toggle the unsent listing",
	"drafts":   "toggle draft authoring",
	"write":    "write <text> into the draft buffer",
	"save":     "save the draft buffer",
	"restore":  "restore <id> into the draft buffer",
	"rm":       "rm <id> deletes a draft",
	"reading":  "reading [on|off]",
	"help":     "show this help",
	"quit":     "leave the shell",
}

// Shell reads commands and applies them to a session.
type Shell struct {
	Options app.Options
	In      io.Reader
	Out     io.Writer
	// HistoryFile is where line history is kept; empty disables it.
	HistoryFile string

	session *app.Session
}

// HistoryFile returns the default history location.
func HistoryFile(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "shell_history")
}

func (s *Shell) out() io.Writer {
	if s.Out == nil {
		return color.Output
	}
	return s.Out
}

func (s *Shell) Do(ctx context.Context) error {
	opts := s.Options
	opts.Renderer = &printers.PrettyPrint{Out: s.out(), ShowID: true}
	session, err := app.Start(ctx, opts)
	if err != nil {
		return err
	}
	s.session = session

	if f, ok := s.In.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return s.interactive(ctx)
	}
	in := s.In
	if in == nil {
		in = os.Stdin
	}
	return s.scan(ctx, in)
}

func (s *Shell) interactive(ctx context.Context) error {
	l := liner.NewLiner()
	defer l.Close()

	l.SetCtrlCAborts(true)
	l.SetCompleter(completer)

	if s.HistoryFile != "" {
		if f, err := os.Open(s.HistoryFile); err == nil {
			_, _ = l.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer s.saveHistory(l)

	_, _ = fmt.Fprintln(s.out(), "Type 'help' for available commands.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := l.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		l.AppendHistory(line)
		if s.Exec(line) {
			return nil
		}
	}
}

func (s *Shell) saveHistory(l *liner.State) {
	if s.HistoryFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.HistoryFile), 0o755); err != nil {
		return
	}
	if f, err := os.Create(s.HistoryFile); err == nil {
		_, _ = l.WriteHistory(f)
		_ = f.Close()
	}
}

func (s *Shell) scan(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if s.Exec(line) {
			return nil
		}
	}
	return sc.Err()
}

func completer(line string) []string {
	var out []string
	for name := range commands {
		if strings.HasPrefix(name, strings.ToLower(line)) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.help()
	case "ls", "list":
		s.session.CloseFocus()
	case "category", "cat":
		c, err := filter.ParseCategory(rest)
		if err != nil {
			s.fail(err)
			return false
		}
		s.session.SetCategory(c)
	case "query", "find":
		s.session.SetQuery(rest)
	case "open", "show":
		if !s.session.OpenFocus(rest) {
			s.fail(fmt.Errorf("no entry %q", rest))
		}
	case "close":
		s.session.CloseFocus()
	case "unsent":
		s.session.ToggleUnsentListing()
	case "drafts":
		s.session.ToggleDraftAuthoring()
	case "write":
		s.session.SetBuffer(rest)
	case "save":
		_, _ = s.session.SaveDraft()
	case "restore":
		if !s.session.RestoreDraft(rest) {
			s.fail(fmt.Errorf("no draft %q", rest))
		}
	case "rm":
		if err := s.session.DeleteDraft(rest); err != nil {
			s.fail(err)
		}
	case "reading":
		var err error
		if rest == "" {
			err = s.session.ToggleReadingMode()
		} else {
			var on bool
			if on, err = snake.ParseBool(rest); err == nil {
				err = s.session.SetReadingMode(on)
			}
		}
		if err != nil {
			s.fail(err)
		}
	default:
		_, _ = fmt.Fprintf(s.out(), "Unknown command: %s (type 'help' for commands)\n", name)
	}
	return false
}

func (s *Shell) fail(err error) {
	r := color.New(color.FgRed)
	_, _ = r.Fprintf(s.out(), "%v\n", err)
}

func (s *Shell) help() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	bold := color.New(color.Bold)
	for _, name := range names {
		_, _ = fmt.Fprintf(s.out(), "  %s  %s\n", bold.Sprintf("%-9s", name), commands[name])
	}
}
