package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("entity: not found")
	ErrUnknownKind       = errors.New("entity: unknown entity kind")
	ErrUnknownBundle     = errors.New("entity: unknown bundle")
	ErrUnknownVocabulary = errors.New("entity: unknown vocabulary")
	ErrUnknownSortField  = errors.New("entity: unknown sort field")
)

// NotFoundError captures a missing record lookup with enough context to
// render a useful message at the API boundary.
type NotFoundError struct {
	Kind Kind
	Key  string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: %s %s", ErrNotFound.Error(), e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
