package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/hsbacot/bookfind/client"
	"github.com/hsbacot/bookfind/finder"
)

type searchOutput struct {
	Query string        `json:"query"`
	Total int           `json:"total"`
	Books []client.Book `json:"books"`
}

// runSearch prints the first page of results for a title
func runSearch(env Env, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	interactive := fs.Bool("i", false, "Pick a book and print its description")
	fs.BoolVar(interactive, "interactive", false, "Pick a book and print its description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(env.Err, "Usage: bookfind search [--json] [-i] <title>")
		return errors.New("title required")
	}
	query := strings.Join(fs.Args(), " ")

	state := finder.New(nil, env.Service.CoverURL)
	state.SetQuery(query)
	ticket, ok := state.BeginSearch()
	if !ok {
		return errors.New("title must not be blank")
	}

	env.Logger.Info("Searching openlibrary.org", "query", query)
	books, err := env.Service.SearchBooks(context.Background(), ticket.Title)
	state.CompleteSearch(ticket.Seq, books, err)
	if err != nil {
		fmt.Fprintln(env.Err, state.Err())
		return err
	}
	env.Logger.Debug("Search completed", "results", len(books))

	view := state.View()
	shown := state.Results()
	if len(shown) > finder.MaxResults {
		shown = shown[:finder.MaxResults]
	}

	if *interactive {
		return pickAndDescribe(env, state, shown)
	}

	if *jsonOutput {
		return printJSON(env.Out, searchOutput{
			Query: query,
			Total: len(state.Results()),
			Books: shown,
		})
	}

	if view.NoResults {
		fmt.Fprintln(env.Out, finder.NoResultsMessage)
		return nil
	}

	printHeader(env.Out, fmt.Sprintf("Results for %q", query))
	for i, card := range view.Cards {
		printCard(env.Out, i+1, card)
	}
	fmt.Fprintf(env.Out, "Showing %d of %d\n", len(view.Cards), len(state.Results()))
	return nil
}

func pickAndDescribe(env Env, state *finder.State, books []client.Book) error {
	if len(books) == 0 {
		fmt.Fprintln(env.Out, finder.NoResultsMessage)
		return nil
	}

	selected := &books[0]
	if len(books) > 1 {
		var err error
		selected, err = env.Select(books)
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
	}
	env.Logger.Info("Selected book", "title", selected.Title, "key", selected.Key)

	describe(env, state, selected.Key)
	for _, card := range state.View().Cards {
		if card.Key == selected.Key {
			printCard(env.Out, 0, card)
		}
	}
	return nil
}
