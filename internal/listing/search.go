package listing

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/identity"
)

// Product searches widen the keyword match beyond title and body to the
// long-text detail fields and to the product taxonomies.
const (
	productSearchBundle       = "product"
	productCategoryVocabulary = "product_categories"
	productTagVocabulary      = "tags"
	productCategoryRefField   = "field_p_categories"
	productTagRefField        = "field_tags"
)

var productSearchFields = []string{
	"field_p_sub_title",
	"body",
	"field_p_features",
	"field_p_information",
	"field_p_specification",
}

// SearchRequest describes one keyword search. Type scopes the search to one
// bundle; the product bundle gets the widened field and taxonomy match.
type SearchRequest struct {
	Query    string
	Type     string
	Language string
	Limit    int
	Offset   int
}

// SearchResult is one cached search window.
type SearchResult struct {
	Query       string               `json:"query"`
	Type        string               `json:"type,omitempty"`
	Items       []*document.Document `json:"items"`
	Total       int                  `json:"total"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
	HasNext     bool                 `json:"has_next"`
	HasPrevious bool                 `json:"has_previous"`
	Language    string               `json:"language"`
}

// Search matches published nodes by keyword. The generic match covers titles
// and bodies; a product-typed search also scans the product detail fields and
// folds category and tag name matches in. Results are cached per parameter
// set.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	keyword := strings.TrimSpace(req.Query)
	if keyword == "" {
		return nil, ErrEmptyQuery
	}

	limit, offset := clampRange(req.Limit, req.Offset)
	key := identity.CacheKey("search", keyword, req.Type, req.Language, strconv.Itoa(limit), strconv.Itoa(offset))
	if cached, ok := s.searchCache.Get(key); ok {
		return cached, nil
	}

	var categoryIDs, tagIDs []int64
	if req.Type == productSearchBundle {
		var err error
		if categoryIDs, err = s.matchingTermIDs(ctx, productCategoryVocabulary, keyword); err != nil {
			return nil, err
		}
		if tagIDs, err = s.matchingTermIDs(ctx, productTagVocabulary, keyword); err != nil {
			return nil, err
		}
	}

	build := func() entity.Query {
		q := s.store.Query(entity.KindNode).Condition("status", true)
		if req.Type != "" {
			q.Condition("type", req.Type)
		}
		if req.Language != "" {
			q.Condition("langcode", req.Language)
		}
		pattern := "%" + keyword + "%"
		q.ConditionGroup(entity.ConjOr, func(group entity.Query) {
			group.Condition("title", pattern, entity.OpLike)
			if req.Type == productSearchBundle {
				for _, field := range productSearchFields {
					group.Condition(field, pattern, entity.OpLike)
				}
				if len(categoryIDs) > 0 {
					group.Condition(productCategoryRefField+".target_id", categoryIDs, entity.OpIn)
				}
				if len(tagIDs) > 0 {
					group.Condition(productTagRefField+".target_id", tagIDs, entity.OpIn)
				}
			} else {
				group.Condition("body", pattern, entity.OpLike)
			}
		})
		return q
	}

	total, err := build().Count(ctx)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Query:       keyword,
		Type:        req.Type,
		Items:       []*document.Document{},
		Total:       total,
		Limit:       limit,
		Offset:      offset,
		HasNext:     offset+limit < total,
		HasPrevious: offset > 0,
		Language:    req.Language,
	}

	if total > 0 {
		ids, err := build().Sort("created", "desc").Range(offset, limit).Execute(ctx)
		if err != nil {
			return nil, err
		}
		nodes, err := s.store.LoadMultiple(ctx, entity.KindNode, ids)
		if err != nil {
			return nil, err
		}
		for _, node := range nodes {
			doc, err := s.assemble(ctx, node, req.Language)
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, doc)
		}
	}

	s.searchCache.Set(key, result)
	return result, nil
}

// matchingTermIDs folds a vocabulary-scoped taxonomy name match into an
// IN-compatible ID list so the main node query stays a single pass.
func (s *Service) matchingTermIDs(ctx context.Context, vocabulary, keyword string) ([]int64, error) {
	ids, err := s.store.Query(entity.KindTerm).
		Condition("vid", vocabulary).
		Condition("name", "%"+keyword+"%", entity.OpLike).
		Execute(ctx)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
