package bookmarkai

import "context"

// Chatter answers a single free-form message from a user.
type Chatter interface {
	// Chat returns the assistant's reply to message.
	// Returns EINVALID if message or credential is empty.
	Chat(ctx context.Context, message, credential string) (string, error)
}
