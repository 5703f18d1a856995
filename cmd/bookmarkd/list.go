package main

import (
	"fmt"
	"strings"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	user, err := deps.LocalUser()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookmarkai.ErrorMessage(err))
		return err
	}

	page, limit := max(c.Page, 1), max(c.Limit, 1)
	bookmarks, total, err := deps.Bookmarks.FindBookmarks(deps.Ctx, bookmarkai.BookmarkFilter{
		UserID: user.ID,
		Tags:   c.Tags,
		Query:  c.Query,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookmarkai.ErrorMessage(err))
		return err
	}

	if total == 0 {
		fmt.Fprintln(deps.Stdout, "No bookmarks found. Use 'bookmarkd add' to create one.")
		return nil
	}

	for _, b := range bookmarks {
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %s  [%s]\n", b.ID, b.Category, b.URL, strings.Join(b.Tags, ", "))
	}
	if shown := (page-1)*limit + len(bookmarks); shown < total {
		fmt.Fprintf(deps.Stdout, "Showing %d of %d. Use --page %d for more.\n", shown, total, page+1)
	}
	return nil
}
