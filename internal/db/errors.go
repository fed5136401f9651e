package db

import "errors"

var (
	// ErrNoteNotFound marks an absent note id, including a relation
	// endpoint that does not exist at creation time.
	ErrNoteNotFound = errors.New("note not found")

	// ErrInvalidRelationType marks a relation type outside the closed
	// Comment/Reference/Link set.
	ErrInvalidRelationType = errors.New("invalid relation type")
)
