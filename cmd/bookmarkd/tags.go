package main

import (
	"fmt"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Run executes the tags command.
func (c *TagsCmd) Run(deps *Dependencies) error {
	user, err := deps.LocalUser()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookmarkai.ErrorMessage(err))
		return err
	}

	counts, err := deps.Bookmarks.CountTags(deps.Ctx, user.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookmarkai.ErrorMessage(err))
		return err
	}

	if len(counts) == 0 {
		fmt.Fprintln(deps.Stdout, "No tags yet.")
		return nil
	}

	for _, tc := range counts {
		fmt.Fprintf(deps.Stdout, "%4d  %s\n", tc.Count, tc.Name)
	}
	return nil
}
