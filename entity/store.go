package entity

import "context"

// Condition operators accepted by Query implementations.
const (
	OpEquals   = "="
	OpNotEqual = "!="
	OpLike     = "LIKE"
	OpIn       = "IN"
	OpBetween  = "BETWEEN"
	OpGreater  = ">"
	OpLess     = "<"
)

// Conjunctions for condition groups.
const (
	ConjAnd = "AND"
	ConjOr  = "OR"
)

// Query builds a filtered, sorted, bounded lookup against one entity kind.
// Field paths follow the storage convention: base columns by name ("type",
// "status", "langcode", "title", "created", "vid", "name"), custom fields as
// "field_x.value" or "field_x.target_id". A bare custom field name addresses
// its value column.
type Query interface {
	Condition(field string, value any, op ...string) Query
	ConditionGroup(conjunction string, build func(Query)) Query
	Range(offset, limit int) Query
	Sort(field, direction string) Query
	Execute(ctx context.Context) ([]int64, error)
	Count(ctx context.Context) (int, error)
}

// Store is the persistence contract the normalization pipeline consumes. It
// mirrors the operations of a CMS entity storage layer: loads, query
// building, catalogs, and path-alias resolution.
type Store interface {
	Load(ctx context.Context, kind Kind, id int64) (*Entity, error)
	LoadMultiple(ctx context.Context, kind Kind, ids []int64) ([]*Entity, error)
	Query(kind Kind) Query

	Bundles(ctx context.Context) ([]Bundle, error)
	Vocabularies(ctx context.Context) ([]Vocabulary, error)
	FieldDefinitions(ctx context.Context, kind Kind, bundle string) (map[string]FieldDefinition, error)
	ImageStyles(ctx context.Context) ([]ImageStyle, error)

	// ResolveAlias maps a public path alias to an internal path such as
	// "/node/42". When no alias is registered the input is returned
	// unchanged, matching the alias manager contract.
	ResolveAlias(ctx context.Context, alias string) (string, error)

	TermParents(ctx context.Context, id int64) ([]*Entity, error)
	CountUsers(ctx context.Context, activeOnly bool) (int, error)

	Languages(ctx context.Context) ([]Language, error)
	DefaultLanguage(ctx context.Context) (string, error)
}
