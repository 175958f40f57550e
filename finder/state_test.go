package finder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsbacot/bookfind/cache"
	"github.com/hsbacot/bookfind/client"
)

func books(n int) []client.Book {
	out := make([]client.Book, n)
	for i := range out {
		out[i] = client.Book{
			Key:   fmt.Sprintf("/works/OL%dW", i+1),
			Title: fmt.Sprintf("Book %d", i+1),
		}
	}
	return out
}

func TestBeginSearchBlankQueryIsNoop(t *testing.T) {
	for _, q := range []string{"", " ", "\t\n  "} {
		s := New(nil, nil)
		s.SetQuery("first")
		ticket, ok := s.BeginSearch()
		require.True(t, ok)
		s.CompleteSearch(ticket.Seq, books(3), nil)

		s.SetQuery(q)
		_, ok = s.BeginSearch()

		assert.False(t, ok, "query %q", q)
		assert.False(t, s.Loading())
		assert.Empty(t, s.Err())
		assert.Len(t, s.Results(), 3)
	}
}

func TestBeginSearchResetsState(t *testing.T) {
	s := New(nil, nil)
	s.SetQuery("dune")
	ticket, _ := s.BeginSearch()
	s.CompleteSearch(ticket.Seq, nil, errors.New("boom"))
	require.Equal(t, SearchFailedMessage, s.Err())

	s.SetQuery("dune messiah")
	ticket, ok := s.BeginSearch()
	require.True(t, ok)

	assert.True(t, s.Loading())
	assert.Empty(t, s.Err())
	assert.Empty(t, s.Results())
	assert.Equal(t, "dune messiah", ticket.Title)
}

func TestBeginSearchKeepsRawQuery(t *testing.T) {
	s := New(nil, nil)
	s.SetQuery("  harry potter ")
	ticket, ok := s.BeginSearch()
	require.True(t, ok)
	assert.Equal(t, "  harry potter ", ticket.Title)
}

func TestCompleteSearch(t *testing.T) {
	t.Run("success replaces results", func(t *testing.T) {
		s := New(nil, nil)
		s.SetQuery("harry potter")
		ticket, _ := s.BeginSearch()

		applied := s.CompleteSearch(ticket.Seq, books(12), nil)

		assert.True(t, applied)
		assert.False(t, s.Loading())
		assert.Empty(t, s.Err())
		assert.Len(t, s.Results(), 12)
	})

	t.Run("nil results become empty", func(t *testing.T) {
		s := New(nil, nil)
		s.SetQuery("x")
		ticket, _ := s.BeginSearch()

		s.CompleteSearch(ticket.Seq, nil, nil)

		assert.NotNil(t, s.Results())
		assert.Empty(t, s.Results())
		assert.False(t, s.Loading())
	})

	t.Run("failure sets banner and clears loading", func(t *testing.T) {
		s := New(nil, nil)
		s.SetQuery("x")
		ticket, _ := s.BeginSearch()

		s.CompleteSearch(ticket.Seq, books(2), errors.New("network down"))

		assert.Equal(t, SearchFailedMessage, s.Err())
		assert.Empty(t, s.Results())
		assert.False(t, s.Loading())
	})

	t.Run("stale completion is dropped", func(t *testing.T) {
		s := New(nil, nil)
		s.SetQuery("first")
		first, _ := s.BeginSearch()
		s.SetQuery("second")
		second, _ := s.BeginSearch()

		assert.False(t, s.CompleteSearch(first.Seq, books(4), nil))
		assert.True(t, s.Loading())
		assert.Empty(t, s.Results())

		assert.True(t, s.CompleteSearch(second.Seq, books(1), nil))
		assert.False(t, s.Loading())
		assert.Len(t, s.Results(), 1)
	})
}

func TestToggle(t *testing.T) {
	t.Run("first expand requests a fetch", func(t *testing.T) {
		s := New(nil, nil)

		assert.True(t, s.Toggle("/works/OL1W"))
		assert.Equal(t, "/works/OL1W", s.Expanded())
		assert.True(t, s.Pending("/works/OL1W"))
	})

	t.Run("toggle twice restores prior expansion", func(t *testing.T) {
		s := New(nil, nil)
		s.Toggle("/works/OL1W")
		s.StoreDescription("/works/OL1W", "one", nil)
		before := s.Expanded()

		s.Toggle("/works/OL2W")
		s.Toggle("/works/OL2W")
		assert.Empty(t, s.Expanded())

		s.Toggle(before)
		s.Toggle(before)
		assert.Empty(t, s.Expanded())

		s = New(nil, nil)
		before = s.Expanded()
		s.Toggle("/works/OL1W")
		s.Toggle("/works/OL1W")
		assert.Equal(t, before, s.Expanded())
	})

	t.Run("keyless record is not expandable", func(t *testing.T) {
		s := New(nil, nil)
		s.Toggle("/works/OL1W")

		assert.False(t, s.Toggle(""))
		assert.Equal(t, "/works/OL1W", s.Expanded())
		assert.False(t, s.Pending(""))

		s.Toggle("/works/OL1W")
		assert.False(t, s.Toggle(""))
		assert.Empty(t, s.Expanded())
	})

	t.Run("collapse does not fetch", func(t *testing.T) {
		s := New(nil, nil)
		s.Toggle("/works/OL1W")
		assert.False(t, s.Toggle("/works/OL1W"))
		assert.Empty(t, s.Expanded())
	})

	t.Run("cached description is fetched once", func(t *testing.T) {
		s := New(nil, nil)
		fetches := 0
		for i := 0; i < 6; i++ {
			if s.Toggle("/works/OL1W") {
				fetches++
				s.StoreDescription("/works/OL1W", "A tale...", nil)
			}
		}
		assert.Equal(t, 1, fetches)
	})

	t.Run("pending fetch is not duplicated", func(t *testing.T) {
		s := New(nil, nil)
		assert.True(t, s.Toggle("/works/OL1W"))
		assert.False(t, s.Toggle("/works/OL1W"))
		assert.False(t, s.Toggle("/works/OL1W"))
	})

	t.Run("second expand while first pending", func(t *testing.T) {
		s := New(nil, nil)
		assert.True(t, s.Toggle("/works/OL1W"))
		assert.True(t, s.Toggle("/works/OL2W"))
		assert.Equal(t, "/works/OL2W", s.Expanded())

		s.StoreDescription("/works/OL1W", "first", nil)
		s.StoreDescription("/works/OL2W", "second", nil)

		d1, ok := s.Description("/works/OL1W")
		assert.True(t, ok)
		assert.Equal(t, "first", d1)
		d2, _ := s.Description("/works/OL2W")
		assert.Equal(t, "second", d2)
		assert.Equal(t, "/works/OL2W", s.Expanded())
	})
}

func TestStoreDescription(t *testing.T) {
	t.Run("failure stores placeholder", func(t *testing.T) {
		s := New(nil, nil)
		s.Toggle("/works/OL1W")
		s.StoreDescription("/works/OL1W", "", errors.New("timeout"))

		desc, ok := s.Description("/works/OL1W")
		assert.True(t, ok)
		assert.Equal(t, NoDescription, desc)
		assert.False(t, s.Pending("/works/OL1W"))

		s.Toggle("/works/OL1W")
		assert.False(t, s.Toggle("/works/OL1W"), "placeholder must prevent a refetch")
	})

	t.Run("empty description stores placeholder", func(t *testing.T) {
		s := New(nil, nil)
		s.StoreDescription("/works/OL1W", "   ", nil)

		desc, _ := s.Description("/works/OL1W")
		assert.Equal(t, NoDescription, desc)
	})

	t.Run("shares the cache it was given", func(t *testing.T) {
		descs := cache.NewDescriptions()
		s := New(descs, nil)
		s.StoreDescription("/works/OL1W", "A tale...", nil)

		assert.Equal(t, 1, descs.Len())
		assert.Equal(t, 1, s.CacheStats().Entries)
	})
}
