// Package finder holds the book finder's UI state and the transitions that
// mutate it. A State is owned by a single event loop and is never touched
// concurrently; network work happens elsewhere and reports back through
// CompleteSearch and StoreDescription.
package finder

import (
	"strings"

	"github.com/hsbacot/bookfind/cache"
	"github.com/hsbacot/bookfind/client"
)

const (
	MaxResults  = 10
	MaxSubjects = 5

	NoDescription       = "No description available."
	LoadingDescription  = "Loading description..."
	SearchFailedMessage = "❌ Failed to fetch books. Please try again."
	NoResultsMessage    = "No results found."
	UnknownAuthor       = "Unknown author"
	SubjectSeparator    = " • "
)

// SearchTicket identifies one issued search request
type SearchTicket struct {
	Seq   uint64
	Title string
}

// State is the explicit state container for one session
type State struct {
	query    string
	results  []client.Book
	loading  bool
	err      string
	expanded string

	descriptions *cache.Descriptions
	pending      map[string]bool
	seq          uint64

	coverURL func(int) string
}

// New creates an empty session state. coverURL derives a cover image URL
// from a cover id; it may be nil, in which case no covers are shown.
func New(descriptions *cache.Descriptions, coverURL func(int) string) *State {
	if descriptions == nil {
		descriptions = cache.NewDescriptions()
	}
	if coverURL == nil {
		coverURL = func(int) string { return "" }
	}
	return &State{
		results:      []client.Book{},
		descriptions: descriptions,
		pending:      make(map[string]bool),
		coverURL:     coverURL,
	}
}

// SetQuery replaces the search text as typed
func (s *State) SetQuery(q string) {
	s.query = q
}

// BeginSearch starts a search for the current query. It returns ok=false and
// leaves the state untouched when the query is blank.
func (s *State) BeginSearch() (SearchTicket, bool) {
	if strings.TrimSpace(s.query) == "" {
		return SearchTicket{}, false
	}

	s.loading = true
	s.err = ""
	s.results = []client.Book{}
	s.seq++

	return SearchTicket{Seq: s.seq, Title: s.query}, true
}

// CompleteSearch applies the outcome of the search identified by seq. Results
// of a superseded search are dropped and false is returned.
func (s *State) CompleteSearch(seq uint64, books []client.Book, err error) bool {
	if seq != s.seq {
		return false
	}
	defer func() { s.loading = false }()

	if err != nil {
		s.err = SearchFailedMessage
		s.results = []client.Book{}
		return true
	}

	if books == nil {
		books = []client.Book{}
	}
	s.results = books
	return true
}

// Toggle expands the record with the given key, or collapses it when it is
// already expanded. fetch reports whether the caller must request the
// record's description now. Records without a key cannot be expanded.
func (s *State) Toggle(key string) (fetch bool) {
	if key == "" {
		return false
	}
	if s.expanded == key {
		s.expanded = ""
		return false
	}

	s.expanded = key
	if _, cached := s.descriptions.Get(key); cached || s.pending[key] {
		return false
	}

	s.pending[key] = true
	return true
}

// StoreDescription records the outcome of a description fetch. Any failure
// or empty description is stored as the placeholder so it is not requested
// again.
func (s *State) StoreDescription(key, desc string, err error) {
	delete(s.pending, key)

	if err != nil || strings.TrimSpace(desc) == "" {
		desc = NoDescription
	}
	s.descriptions.Set(key, desc)
}

// Query returns the current search text
func (s *State) Query() string { return s.query }

// Loading reports whether a search is outstanding
func (s *State) Loading() bool { return s.loading }

// Err returns the current error banner, if any
func (s *State) Err() string { return s.err }

// Results returns the full result set of the last applied search
func (s *State) Results() []client.Book { return s.results }

// Expanded returns the key of the expanded record, or ""
func (s *State) Expanded() string { return s.expanded }

// Pending reports whether a description fetch for key is outstanding
func (s *State) Pending(key string) bool { return s.pending[key] }

// Description returns the cached description for key
func (s *State) Description(key string) (string, bool) {
	return s.descriptions.Peek(key)
}

// CacheStats returns statistics of the session description cache
func (s *State) CacheStats() cache.Stats {
	return s.descriptions.Stats()
}
