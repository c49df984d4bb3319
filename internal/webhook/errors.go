package webhook

import "errors"

var (
	// ErrMalformedPayload is returned when a pull_request payload lacks a required field.
	ErrMalformedPayload = errors.New("malformed pull_request payload")
)
