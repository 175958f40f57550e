package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hsbacot/bookfind/finder"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.initial != nil {
		cmds = append(cmds, m.searchBooks(*m.initial))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and state transitions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateResults(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchCompleteMsg:
		if !m.state.CompleteSearch(msg.seq, msg.books, msg.err) {
			m.logger.Debug("Dropping superseded search result", "seq", msg.seq)
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("Search failed", "error", msg.err)
		} else {
			m.logger.Debug("Search completed", "results", len(msg.books))
		}
		m.cursor = 0
		m.viewport.GotoTop()
		m.refresh()
		return m, nil

	case descriptionFetchedMsg:
		if msg.err != nil {
			m.logger.Warn("Description fetch failed", "key", msg.key, "error", msg.err)
		} else {
			m.logger.Debug("Description fetched", "key", msg.key, "bytes", len(msg.description))
		}
		m.state.StoreDescription(msg.key, msg.description, msg.err)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		return m.search()

	case key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit

	case key.Matches(msg, m.keys.FocusList):
		if len(m.state.View().Cards) == 0 {
			return m, nil
		}
		m.focus = focusResults
		m.input.Blur()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.SetQuery(m.input.Value())
	m.refresh()
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.state.View().Cards

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(cards)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if len(cards) == 0 {
			return m, nil
		}
		return m.toggle(cards[m.cursor].Key)

	case key.Matches(msg, m.keys.FocusInput):
		m.focus = focusInput
		cmd := m.input.Focus()
		m.refresh()
		return m, cmd

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m Model) search() (tea.Model, tea.Cmd) {
	ticket, ok := m.state.BeginSearch()
	if !ok {
		return m, nil
	}

	m.logger.Info("Searching openlibrary.org", "query", ticket.Title)
	m.cursor = 0
	m.refresh()
	return m, m.searchBooks(ticket)
}

func (m Model) toggle(bookKey string) (tea.Model, tea.Cmd) {
	fetch := m.state.Toggle(bookKey)
	m.refresh()
	if !fetch {
		return m, nil
	}

	m.logger.Debug("Fetching description", "key", bookKey)
	return m, m.fetchDescription(bookKey)
}

// Command functions (run async)

func (m Model) searchBooks(ticket finder.SearchTicket) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		books, err := svc.SearchBooks(context.Background(), ticket.Title)
		return searchCompleteMsg{
			seq:   ticket.Seq,
			books: books,
			err:   err,
		}
	}
}

func (m Model) fetchDescription(bookKey string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		desc, err := svc.FetchDescription(context.Background(), bookKey)
		return descriptionFetchedMsg{
			key:         bookKey,
			description: desc,
			err:         err,
		}
	}
}
