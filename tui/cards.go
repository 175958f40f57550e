package tui

import (
	"fmt"
	"strings"

	"github.com/hsbacot/bookfind/finder"
)

func renderCard(c finder.Card, selected bool, width int) string {
	lines := []string{cardTitle.Render(c.Title)}
	lines = append(lines, "✍ "+c.Authors)
	if c.Year > 0 {
		lines = append(lines, fmt.Sprintf("📆 First: %d", c.Year))
	}
	if c.CoverURL != "" {
		lines = append(lines, "🖼  "+c.CoverURL)
	} else {
		lines = append(lines, subtleStyle.Render("🖼  No cover"))
	}

	if c.Expanded {
		lines = append(lines, "")
		lines = append(lines, "📖 "+c.Description)
		if c.Subjects != "" {
			lines = append(lines, subtleStyle.Render(c.Subjects))
		}
	}

	style := cardStyle
	switch {
	case selected:
		style = selectedStyle
	case c.Expanded:
		style = openStyle
	}

	return style.Width(max(width-2, 20)).Render(strings.Join(lines, "\n"))
}
