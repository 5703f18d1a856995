package main

import (
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// LocalUserEmail identifies the user that owns bookmarks added from the
// command line.
const LocalUserEmail = "local@bookmarkd.localhost"

// LocalUser returns the command-line user, creating it on first use. The
// user has no usable password and cannot log in to the API.
func (d *Dependencies) LocalUser() (*bookmarkai.User, error) {
	u, err := d.Users.FindUserByEmail(d.Ctx, LocalUserEmail)
	if bookmarkai.ErrorCode(err) != bookmarkai.ENOTFOUND {
		return u, err
	}

	u = &bookmarkai.User{Email: LocalUserEmail, Name: "Local", PasswordHash: "!"}
	if err := d.Users.CreateUser(d.Ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
