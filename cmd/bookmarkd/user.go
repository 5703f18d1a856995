package main

import (
	"fmt"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Run executes the user create command.
func (c *UserCreateCmd) Run(deps *Dependencies) error {
	if len(c.Password) < bookmarkai.MinPasswordLength {
		err := bookmarkai.Errorf(bookmarkai.EINVALID, "Password must be at least %d characters long", bookmarkai.MinPasswordLength)
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookmarkai.ErrorMessage(err))
		return err
	}

	hash, err := deps.Hasher.Hash(c.Password)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookmarkai.ErrorMessage(err))
		return err
	}

	u := &bookmarkai.User{Email: bookmarkai.NormalizeEmail(c.Email), Name: c.Name, PasswordHash: hash}
	if err := deps.Users.CreateUser(deps.Ctx, u); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookmarkai.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created user %s (%s)\n", u.Email, u.ID)
	return nil
}
