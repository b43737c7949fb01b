package chat

import "errors"

var (
	// ErrValidation covers empty content, missing ids and malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a referenced user id does not resolve to a user.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps failures from the durable store.
	ErrPersistence = errors.New("persistence failed")
)
