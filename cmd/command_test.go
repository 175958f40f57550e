package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hsbacot/bookfind/client"
	"github.com/hsbacot/bookfind/finder"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) SearchBooks(ctx context.Context, title string) ([]client.Book, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]client.Book), args.Error(1)
}

func (m *mockService) FetchDescription(ctx context.Context, bookKey string) (string, error) {
	args := m.Called(ctx, bookKey)
	return args.String(0), args.Error(1)
}

func (m *mockService) CoverURL(coverID int) string {
	if coverID == 0 {
		return ""
	}
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", coverID)
}

func testEnv(svc *mockService) (Env, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Env{Service: svc, Out: &out, Err: &errOut}, &out, &errOut
}

func manyBooks(n int) []client.Book {
	out := make([]client.Book, n)
	for i := range out {
		out[i] = client.Book{Key: fmt.Sprintf("/works/OL%dW", i+1), Title: fmt.Sprintf("Book %d", i+1)}
	}
	return out
}

func TestSearchCommand(t *testing.T) {
	svc := new(mockService)
	svc.On("SearchBooks", mock.Anything, "harry potter").Return(append([]client.Book{{
		Key:              "/works/OL82563W",
		Title:            "Harry Potter and the Philosopher's Stone",
		Authors:          []string{"J. K. Rowling"},
		FirstPublishYear: 1997,
		CoverID:          10521270,
	}}, manyBooks(11)...), nil).Once()
	env, out, _ := testEnv(svc)

	err := Run("search", []string{"harry", "potter"}, env)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `Results for "harry potter"`)
	assert.Contains(t, text, "1. Harry Potter and the Philosopher's Stone")
	assert.Contains(t, text, "✍ J. K. Rowling")
	assert.Contains(t, text, "📆 First: 1997")
	assert.Contains(t, text, "10521270-M.jpg")
	assert.Contains(t, text, "10. Book 9")
	assert.NotContains(t, text, "11. ")
	assert.Contains(t, text, "Showing 10 of 12")
	svc.AssertExpectations(t)
}

func TestSearchCommandJSON(t *testing.T) {
	svc := new(mockService)
	svc.On("SearchBooks", mock.Anything, "dune").Return(manyBooks(12), nil).Once()
	env, out, _ := testEnv(svc)

	require.NoError(t, Run("search", []string{"--json", "dune"}, env))

	var got searchOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "dune", got.Query)
	assert.Equal(t, 12, got.Total)
	assert.Len(t, got.Books, finder.MaxResults)
}

func TestSearchCommandNoResults(t *testing.T) {
	svc := new(mockService)
	svc.On("SearchBooks", mock.Anything, "zzzzzxxxxx").Return([]client.Book{}, nil).Once()
	env, out, _ := testEnv(svc)

	require.NoError(t, Run("search", []string{"zzzzzxxxxx"}, env))
	assert.Equal(t, finder.NoResultsMessage+"\n", out.String())
}

func TestSearchCommandFailure(t *testing.T) {
	svc := new(mockService)
	svc.On("SearchBooks", mock.Anything, "dune").Return(nil, errors.New("dial tcp: refused")).Once()
	env, out, errOut := testEnv(svc)

	err := Run("search", []string{"dune"}, env)
	assert.Error(t, err)
	assert.Empty(t, out.String())
	assert.Equal(t, "❌ Failed to fetch books. Please try again.\n", errOut.String())
}

func TestSearchCommandRequiresTitle(t *testing.T) {
	svc := new(mockService)
	env, _, errOut := testEnv(svc)

	assert.Error(t, Run("search", nil, env))
	assert.Contains(t, errOut.String(), "Usage")

	assert.Error(t, Run("search", []string{"   "}, env))
	svc.AssertNotCalled(t, "SearchBooks", mock.Anything, mock.Anything)
}

func TestSearchCommandInteractive(t *testing.T) {
	svc := new(mockService)
	books := manyBooks(3)
	books[1].Subjects = []string{"a", "b", "c", "d", "e", "f"}
	svc.On("SearchBooks", mock.Anything, "x").Return(books, nil).Once()
	svc.On("FetchDescription", mock.Anything, "/works/OL2W").Return("Second book.", nil).Once()
	env, out, _ := testEnv(svc)

	var offered int
	env.Select = func(b []client.Book) (*client.Book, error) {
		offered = len(b)
		return &b[1], nil
	}

	require.NoError(t, Run("search", []string{"-i", "x"}, env))

	assert.Equal(t, 3, offered)
	text := out.String()
	assert.Contains(t, text, "Book 2")
	assert.Contains(t, text, "📖 Second book.")
	assert.Contains(t, text, "a • b • c • d • e\n")
	svc.AssertExpectations(t)
}

func TestSearchCommandInteractiveCancelled(t *testing.T) {
	svc := new(mockService)
	svc.On("SearchBooks", mock.Anything, "x").Return(manyBooks(2), nil).Once()
	env, _, _ := testEnv(svc)
	env.Select = func([]client.Book) (*client.Book, error) {
		return nil, errors.New("user aborted")
	}

	assert.Error(t, Run("search", []string{"-i", "x"}, env))
	svc.AssertNotCalled(t, "FetchDescription", mock.Anything, mock.Anything)
}

func TestDescribeCommand(t *testing.T) {
	svc := new(mockService)
	svc.On("FetchDescription", mock.Anything, "/works/OL1W").Return("A tale...", nil).Once()
	env, out, _ := testEnv(svc)

	require.NoError(t, Run("describe", []string{"/works/OL1W"}, env))
	assert.Equal(t, "A tale...\n", out.String())
}

func TestDescribeCommandFailureUsesPlaceholder(t *testing.T) {
	svc := new(mockService)
	svc.On("FetchDescription", mock.Anything, "/works/OL1W").Return("", errors.New("404")).Once()
	env, out, _ := testEnv(svc)

	require.NoError(t, Run("describe", []string{"--json", "/works/OL1W"}, env))

	var got describeOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, describeOutput{Key: "/works/OL1W", Description: finder.NoDescription}, got)
}

func TestUnknownCommand(t *testing.T) {
	env, _, errOut := testEnv(new(mockService))

	assert.Error(t, Run("nope", nil, env))
	assert.True(t, strings.HasPrefix(errOut.String(), "Usage:"))
	assert.True(t, IsCommand("search"))
	assert.False(t, IsCommand("harry potter"))
}
