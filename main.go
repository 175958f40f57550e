package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hsbacot/bookfind/cache"
	"github.com/hsbacot/bookfind/client"
	"github.com/hsbacot/bookfind/cmd"
	"github.com/hsbacot/bookfind/config"
	"github.com/hsbacot/bookfind/tui"
	"github.com/hsbacot/bookfind/ui"
)

func main() {
	// Parse command-line flags
	verbose := flag.Bool("v", false, "verbose mode - show detailed logs")
	flag.BoolVar(verbose, "verbose", false, "verbose mode - show detailed logs")
	configPath := flag.String("config", "", "path to a YAML config file")
	logFile := flag.String("log-file", "", "write interactive-mode logs to this file")
	flag.Parse()

	cfg, err := config.Load(config.Resolve(*configPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Log.Verbose = true
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	args := flag.Args()

	// Non-interactive subcommands log to stderr
	if len(args) > 0 && cmd.IsCommand(args[0]) {
		logger := ui.InitLogger(cfg.Log.Verbose)
		apiClient := client.NewClient(append(cfg.ClientOptions(), client.WithLogger(logger))...)
		cmd.RunCommand(args[0], args[1:], cmd.Env{
			Service: apiClient,
			Logger:  logger,
		})
		return
	}

	// Interactive mode: the terminal belongs to the TUI
	logger, closer, err := ui.InitTUILogger(cfg.Log.File, cfg.Log.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	apiClient := client.NewClient(append(cfg.ClientOptions(), client.WithLogger(logger))...)
	query := strings.Join(args, " ")
	logger.Debug("Starting", "query", query, "base_url", cfg.API.BaseURL)

	model := tui.NewModel(tui.Options{
		Query:   query,
		Verbose: cfg.Log.Verbose,
		Logger:  logger,
		Service: apiClient,
		Cache:   cache.NewDescriptions(),
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		logger.Error("TUI failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if m, ok := final.(tui.Model); ok {
		stats := m.State().CacheStats()
		logger.Debug("Session finished", "descriptions", stats.Entries, "hits", stats.Hits, "misses", stats.Misses)
	}
}
