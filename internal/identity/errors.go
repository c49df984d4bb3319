package identity

import "errors"

var (
	// ErrMalformedMapping is returned when a mapping file exists but is not valid JSON.
	ErrMalformedMapping = errors.New("malformed identity mapping")
)
