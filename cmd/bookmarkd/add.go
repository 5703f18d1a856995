package main

import (
	"fmt"
	"strings"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	user, err := deps.LocalUser()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookmarkai.ErrorMessage(err))
		return err
	}

	credential := c.APIKey
	if credential == "" {
		credential = user.APIKey
	}

	b, err := deps.Ingester.CreateBookmark(deps.Ctx, user.ID, c.URL, credential)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookmarkai.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %s\n", b.URL)
	fmt.Fprintf(deps.Stdout, "  Title:    %s\n", b.Title)
	fmt.Fprintf(deps.Stdout, "  Category: %s\n", b.Category)
	fmt.Fprintf(deps.Stdout, "  Tags:     %s\n", strings.Join(b.Tags, ", "))
	fmt.Fprintf(deps.Stdout, "  Summary:  %s\n", b.AISummary)
	if b.Degraded() {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", b.Warning)
	}
	return nil
}
