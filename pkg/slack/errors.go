package slack

import "errors"

var (
	// ErrUserNotFound is returned when no workspace member has the given email.
	ErrUserNotFound = errors.New("slack user not found")
)
