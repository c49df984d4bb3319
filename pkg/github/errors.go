package github

import "errors"

var (
	// ErrInvalidRepository is returned for repository names not in owner/name form.
	ErrInvalidRepository = errors.New("repository must be owner/name")
)
