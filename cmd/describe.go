package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/hsbacot/bookfind/finder"
)

type describeOutput struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// runDescribe prints the description of one book key
func runDescribe(env Env, args []string) error {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(env.Err, "Usage: bookfind describe [--json] <book-key>")
		return errors.New("book key required")
	}
	bookKey := fs.Arg(0)

	state := finder.New(nil, env.Service.CoverURL)
	desc := describe(env, state, bookKey)

	if *jsonOutput {
		return printJSON(env.Out, describeOutput{Key: bookKey, Description: desc})
	}

	fmt.Fprintln(env.Out, desc)
	return nil
}

// describe expands bookKey in state, fetching its description when it is not
// cached, and returns the text to show.
func describe(env Env, state *finder.State, bookKey string) string {
	if state.Toggle(bookKey) {
		env.Logger.Info("Fetching description", "key", bookKey)
		desc, err := env.Service.FetchDescription(context.Background(), bookKey)
		if err != nil {
			env.Logger.Warn("Description fetch failed", "key", bookKey, "error", err)
		}
		state.StoreDescription(bookKey, desc, err)
	}

	desc, _ := state.Description(bookKey)
	return desc
}
