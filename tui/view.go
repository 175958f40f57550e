package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hsbacot/bookfind/finder"
)

var (
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	cardTitle     = lipgloss.NewStyle().Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	selectedStyle = cardStyle.BorderForeground(lipgloss.Color("205"))
	openStyle     = cardStyle.BorderForeground(lipgloss.Color("42"))
)

// View renders the UI from the current state
func (m Model) View() string {
	v := m.state.View()

	var b strings.Builder
	b.WriteString(headerStyle.Render("📚 Book Finder"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Search for books by title using the Open Library API."))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if v.Loading {
		b.WriteString(fmt.Sprintf("%s Loading…\n", m.spinner.View()))
	}
	if v.NoResults {
		b.WriteString(infoStyle.Render(finder.NoResultsMessage))
		b.WriteString("\n")
	}
	if v.Error != "" {
		b.WriteString(errorStyle.Render(v.Error))
		b.WriteString("\n")
	}

	if len(v.Cards) > 0 {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine(v))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine(v finder.View) string {
	if len(v.Cards) == 0 {
		return ""
	}
	line := fmt.Sprintf("%d of %d shown", len(v.Cards), len(m.state.Results()))
	if m.verbose {
		stats := m.state.CacheStats()
		line += fmt.Sprintf(" • %d descriptions cached (%d hits, %d misses)", stats.Entries, stats.Hits, stats.Misses)
	}
	return subtleStyle.Render(line)
}

// refresh re-renders the card list into the viewport after a state
// transition and keeps the selected card in view.
func (m *Model) refresh() {
	m.keys.inputActive = m.focus == focusInput

	cards := m.state.View().Cards
	if m.cursor >= len(cards) {
		m.cursor = max(len(cards)-1, 0)
	}
	if len(cards) == 0 && m.focus == focusResults {
		m.focus = focusInput
		m.keys.inputActive = true
		m.input.Focus()
	}

	rendered := make([]string, len(cards))
	m.cardStarts = make([]int, len(cards))
	m.cardEnds = make([]int, len(cards))
	line := 0
	for i, c := range cards {
		rendered[i] = renderCard(c, m.focus == focusResults && i == m.cursor, m.width)
		m.cardStarts[i] = line
		line += lipgloss.Height(rendered[i])
		m.cardEnds[i] = line
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))

	if len(cards) == 0 {
		return
	}
	start, end := m.cardStarts[m.cursor], m.cardEnds[m.cursor]
	if start < m.viewport.YOffset {
		m.viewport.SetYOffset(start)
	} else if end > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(end - m.viewport.Height)
	}
}
