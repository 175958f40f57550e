package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hsbacot/bookfind/client"
	"github.com/hsbacot/bookfind/ui"
)

// Service is the part of the Open Library client the subcommands use
type Service interface {
	SearchBooks(ctx context.Context, title string) ([]client.Book, error)
	FetchDescription(ctx context.Context, bookKey string) (string, error)
	CoverURL(coverID int) string
}

// Env carries the dependencies of a subcommand run
type Env struct {
	Service Service
	Logger  *log.Logger
	Out     io.Writer
	Err     io.Writer
	// Select picks one book interactively; defaults to ui.SelectBook
	Select func([]client.Book) (*client.Book, error)
}

func (e Env) withDefaults() Env {
	if e.Service == nil {
		e.Service = client.NewClient()
	}
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Out == nil {
		e.Out = os.Stdout
	}
	if e.Err == nil {
		e.Err = os.Stderr
	}
	if e.Select == nil {
		e.Select = ui.SelectBook
	}
	return e
}

// IsCommand reports whether name is a known subcommand
func IsCommand(name string) bool {
	switch name {
	case "search", "describe", "help":
		return true
	}
	return false
}

// RunCommand handles all subcommands and exits non-zero on failure
func RunCommand(name string, args []string, env Env) {
	if err := Run(name, args, env); err != nil {
		env.withDefaults().Logger.Error("Command failed", "command", name, "error", err)
		os.Exit(1)
	}
}

// Run executes one subcommand
func Run(name string, args []string, env Env) error {
	env = env.withDefaults()

	switch name {
	case "search":
		return runSearch(env, args)
	case "describe":
		return runDescribe(env, args)
	case "help":
		printUsage(env.Out)
		return nil
	default:
		printUsage(env.Err)
		return fmt.Errorf("unknown command: %s", name)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  bookfind [OPTIONS] [title]             Interactive search")
	fmt.Fprintln(w, "  bookfind search [--json] [-i] <title>  Print up to 10 matching books")
	fmt.Fprintln(w, "  bookfind describe [--json] <key>       Print a book's description")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -v, --verbose        Show detailed logs")
	fmt.Fprintln(w, "  --config <file>      YAML config file (default $BOOKFIND_CONFIG)")
	fmt.Fprintln(w, "  --log-file <file>    Write interactive-mode logs to a file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example:")
	fmt.Fprintln(w, "  bookfind \"harry potter\"")
	fmt.Fprintln(w, "  bookfind search -i dune")
	fmt.Fprintln(w, "  bookfind describe /works/OL82563W")
}
