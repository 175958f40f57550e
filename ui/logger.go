package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// InitLogger initializes and configures a Charm logger on stderr
func InitLogger(verbose bool) *log.Logger {
	return NewLogger(os.Stderr, verbose)
}

// NewLogger configures a Charm logger writing to w
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    verbose,
		ReportTimestamp: verbose,
		Prefix:          "bookfind",
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	return logger
}

// InitTUILogger returns a logger for interactive mode. The terminal belongs to
// the TUI, so output goes to path when set and is discarded otherwise. The
// returned closer must be closed on exit.
func InitTUILogger(path string, verbose bool) (*log.Logger, io.Closer, error) {
	if path == "" {
		return NewLogger(io.Discard, verbose), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewLogger(f, verbose), f, nil
}
