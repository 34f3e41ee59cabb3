package contentapi

import (
	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/listing"
)

// Sentinel errors surfaced by the read services.
var (
	ErrNotFound          = entity.ErrNotFound
	ErrUnknownBundle     = entity.ErrUnknownBundle
	ErrUnknownVocabulary = entity.ErrUnknownVocabulary
	ErrUnknownSortField  = entity.ErrUnknownSortField
	ErrInvalidPath       = document.ErrInvalidPath
	ErrEmptyQuery        = listing.ErrEmptyQuery
)

// Structured error types carrying lookup context.
type (
	NotFoundError       = document.NotFoundError
	InvalidPathError    = document.InvalidPathError
	EntityNotFoundError = entity.NotFoundError
)
