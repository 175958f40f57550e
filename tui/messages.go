package tui

import (
	"github.com/hsbacot/bookfind/client"
)

// Message types for Bubble Tea state transitions

type searchCompleteMsg struct {
	seq   uint64
	books []client.Book
	err   error
}

type descriptionFetchedMsg struct {
	key         string
	description string
	err         error
}
