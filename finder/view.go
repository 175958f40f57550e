package finder

import (
	"strings"

	"github.com/hsbacot/bookfind/client"
)

// View is everything a renderer needs to draw the current state
type View struct {
	Loading   bool
	NoResults bool
	Error     string
	Cards     []Card
}

// Card is one rendered result
type Card struct {
	Key      string
	Title    string
	Authors  string
	Year     int    // 0 when unknown
	CoverURL string // "" when the book has no cover

	Expanded    bool
	Description string
	Subjects    string
}

// View computes the view-model for the current state
func (s *State) View() View {
	v := View{
		Loading:   s.loading,
		NoResults: !s.loading && len(s.results) == 0 && s.query != "",
		Error:     s.err,
	}

	if s.loading {
		return v
	}

	books := s.results
	if len(books) > MaxResults {
		books = books[:MaxResults]
	}

	v.Cards = make([]Card, 0, len(books))
	for _, b := range books {
		v.Cards = append(v.Cards, s.card(b))
	}

	return v
}

func (s *State) card(b client.Book) Card {
	c := Card{
		Key:      b.Key,
		Title:    b.Title,
		Authors:  formatAuthors(b.Authors),
		Year:     b.FirstPublishYear,
		CoverURL: s.coverURL(b.CoverID),
	}
	if b.CoverID == 0 {
		c.CoverURL = ""
	}

	if s.expanded == "" || b.Key != s.expanded {
		return c
	}

	c.Expanded = true
	c.Description = LoadingDescription
	if desc, ok := s.descriptions.Peek(b.Key); ok {
		c.Description = desc
	}
	c.Subjects = formatSubjects(b.Subjects)

	return c
}

func formatAuthors(authors []string) string {
	if len(authors) == 0 {
		return UnknownAuthor
	}
	return strings.Join(authors, ", ")
}

func formatSubjects(subjects []string) string {
	if len(subjects) > MaxSubjects {
		subjects = subjects[:MaxSubjects]
	}
	return strings.Join(subjects, SubjectSeparator)
}
