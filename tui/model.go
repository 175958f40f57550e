package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/hsbacot/bookfind/cache"
	"github.com/hsbacot/bookfind/client"
	"github.com/hsbacot/bookfind/finder"
)

// BookService is the part of the Open Library client the TUI depends on
type BookService interface {
	SearchBooks(ctx context.Context, title string) ([]client.Book, error)
	FetchDescription(ctx context.Context, bookKey string) (string, error)
	CoverURL(coverID int) string
}

type focus int

const (
	focusInput focus = iota
	focusResults
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// lines taken by header, input, status, and help around the viewport
	chromeHeight = 9
)

// Options contains configuration for the Model
type Options struct {
	Query   string
	Verbose bool
	Logger  *log.Logger
	Service BookService
	Cache   *cache.Descriptions
}

// Model is the Bubble Tea model for bookfind. It owns the session state;
// only Update mutates it.
type Model struct {
	// State
	state   *finder.State
	focus   focus
	cursor  int
	initial *finder.SearchTicket

	// UI Components
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	width    int

	// card line offsets within the viewport content, for cursor scrolling
	cardStarts []int
	cardEnds   []int

	// Services
	service BookService
	logger  *log.Logger
	verbose bool
}

// NewModel creates a new Bubble Tea model. A non-empty opts.Query is
// searched as soon as the program starts.
func NewModel(opts Options) Model {
	svc := opts.Service
	if svc == nil {
		svc = client.NewClient()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	ti := textinput.New()
	ti.Placeholder = "Type a book title (e.g. harry potter)"
	ti.Prompt = "🔍 "
	ti.CharLimit = 200
	ti.Width = 50
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	ti.Focus()

	m := Model{
		state:    finder.New(opts.Cache, svc.CoverURL),
		focus:    focusInput,
		input:    ti,
		spinner:  s,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		help:     help.New(),
		keys:     newKeyMap(),
		width:    defaultWidth,
		service:  svc,
		logger:   logger,
		verbose:  opts.Verbose,
	}

	if opts.Query != "" {
		m.input.SetValue(opts.Query)
		m.state.SetQuery(opts.Query)
		if ticket, ok := m.state.BeginSearch(); ok {
			m.initial = &ticket
			m.logger.Info("Searching openlibrary.org", "query", ticket.Title)
		}
	}

	m.refresh()
	return m
}

// State exposes the session state, mainly for inspection after the program exits
func (m Model) State() *finder.State {
	return m.state
}
