package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// newLogger builds the CLI logger. Terminals get colored text output,
// anything else gets logfmt so the lines can be parsed.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "arena",
		Level:           lvl,
	})

	if isTerminal(w) {
		logger.SetStyles(logStyles())
	} else {
		logger.SetFormatter(log.LogfmtFormatter)
	}
	return logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //#nosec G115 -- file descriptors fit in int
}

// logStyles highlights misses and keeps per-tick keys dim.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Bold(true).
		Foreground(lipgloss.Color("86"))
	styles.Keys["tick"] = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styles.Keys["side"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["side"] = lipgloss.NewStyle().Bold(true)
	return styles
}
