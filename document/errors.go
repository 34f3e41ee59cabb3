package document

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPath = errors.New("document: invalid internal path")
	ErrNotFound    = errors.New("document: not found")
)

// NotFoundError reports a missing, unpublished, or bundle-mismatched entity.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: %s '%s'", ErrNotFound.Error(), e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// InvalidPathError reports an internal path that does not match the
// /<kind>/<numeric-id> pattern.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	if e == nil {
		return ErrInvalidPath.Error()
	}
	return fmt.Sprintf("%s: '%s'", ErrInvalidPath.Error(), e.Path)
}

func (e *InvalidPathError) Unwrap() error {
	return ErrInvalidPath
}
