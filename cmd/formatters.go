package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hsbacot/bookfind/finder"
)

// printHeader prints a styled header
func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("━", len([]rune(title))))
	fmt.Fprintln(w)
}

// printJSON marshals data to JSON and prints it
func printJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printCard prints one result; index 0 omits the number
func printCard(w io.Writer, index int, c finder.Card) {
	if index > 0 {
		fmt.Fprintf(w, "%d. %s\n", index, c.Title)
	} else {
		fmt.Fprintln(w, c.Title)
	}
	fmt.Fprintf(w, "   ✍ %s\n", c.Authors)
	if c.Year > 0 {
		fmt.Fprintf(w, "   📆 First: %d\n", c.Year)
	}
	if c.CoverURL != "" {
		fmt.Fprintf(w, "   🖼  %s\n", c.CoverURL)
	}
	fmt.Fprintf(w, "   🔑 %s\n", c.Key)
	if c.Expanded {
		fmt.Fprintf(w, "   📖 %s\n", c.Description)
		if c.Subjects != "" {
			fmt.Fprintf(w, "   %s\n", c.Subjects)
		}
	}
	fmt.Fprintln(w)
}
