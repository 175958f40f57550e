package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/ansi"

	"github.com/hsbacot/bookfind/client"
)

const maxAuthorsWidth = 60

// BookLabel builds the one-line label shown for a book in the picker
func BookLabel(b client.Book) string {
	label := b.Title
	if len(b.Authors) > 0 {
		// Truncate long author lists on display width
		authors := ansi.Truncate(strings.Join(b.Authors, ", "), maxAuthorsWidth, "...")
		label = fmt.Sprintf("%s - %s", label, authors)
	}
	if b.FirstPublishYear > 0 {
		label = fmt.Sprintf("%s (%d)", label, b.FirstPublishYear)
	}
	return label
}

// bookOptions keys each option by position, since keys are not guaranteed unique
func bookOptions(books []client.Book) []huh.Option[int] {
	options := make([]huh.Option[int], len(books))
	for i, b := range books {
		options[i] = huh.NewOption(BookLabel(b), i)
	}
	return options
}

func pickBook(books []client.Book, selected int) (*client.Book, error) {
	if selected < 0 || selected >= len(books) {
		return nil, errors.New("selection not found")
	}
	return &books[selected], nil
}

// SelectBook presents an interactive selection menu for choosing a book
func SelectBook(books []client.Book) (*client.Book, error) {
	if len(books) == 0 {
		return nil, errors.New("no books to select from")
	}

	selected := -1
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Multiple books found - choose one:").
				Options(bookOptions(books)...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	return pickBook(books, selected)
}
