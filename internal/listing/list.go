package listing

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
)

// Sortable base columns for type listings.
var sortFields = map[string]string{
	"created": "created",
	"changed": "changed",
	"updated": "changed",
	"title":   "title",
	"id":      "nid",
	"nid":     "nid",
}

// ListRequest describes one filtered type listing.
type ListRequest struct {
	Bundle   string
	Language string
	Limit    int
	Offset   int
	Sort     string
	Order    string
	Filters  map[string]string
}

// Page is one listing result window. RequestedLanguage echoes the request
// while ReturnedLanguage reports the language actually served, which differs
// when the silent default-language fallback engaged.
type Page struct {
	ContentType       string               `json:"content_type"`
	Items             []*document.Document `json:"items"`
	Total             int                  `json:"total"`
	Limit             int                  `json:"limit"`
	Offset            int                  `json:"offset"`
	HasNext           bool                 `json:"has_next"`
	HasPrevious       bool                 `json:"has_previous"`
	RequestedLanguage string               `json:"requested_language"`
	ReturnedLanguage  string               `json:"returned_language"`
}

// GetRequest describes one single-content lookup.
type GetRequest struct {
	Bundle   string
	ID       int64
	Language string
}

// List returns a window of published documents for one bundle. When the
// requested language yields nothing and is not the site default, the query
// silently reruns against the default language.
func (s *Service) List(ctx context.Context, req ListRequest) (*Page, error) {
	if err := s.checkBundle(ctx, req.Bundle); err != nil {
		return nil, err
	}

	sort, orderHint := splitSortPrefix(req.Sort)
	sortField, err := resolveSort(sort)
	if err != nil {
		return nil, err
	}
	if req.Order == "" {
		req.Order = orderHint
	}
	order := resolveOrder(req.Order)
	limit, offset := clampRange(req.Limit, req.Offset)

	language := req.Language
	page, err := s.listWindow(ctx, req, language, sortField, order, limit, offset)
	if err != nil {
		return nil, err
	}

	if page.Total == 0 && language != "" {
		fallback, err := s.store.DefaultLanguage(ctx)
		if err != nil {
			return nil, err
		}
		if fallback != language {
			s.log.Debug("listing fell back to default language", "bundle", req.Bundle, "requested", language, "fallback", fallback)
			page, err = s.listWindow(ctx, req, fallback, sortField, order, limit, offset)
			if err != nil {
				return nil, err
			}
		}
	}
	return page, nil
}

func (s *Service) listWindow(ctx context.Context, req ListRequest, language, sortField, order string, limit, offset int) (*Page, error) {
	build := func() (entity.Query, error) {
		q := s.store.Query(entity.KindNode).
			Condition("type", req.Bundle).
			Condition("status", true)
		if language != "" {
			q.Condition("langcode", language)
		}
		if err := s.applyFilters(ctx, q, entity.KindNode, req.Bundle, req.Filters); err != nil {
			return nil, err
		}
		return q, nil
	}

	countQuery, err := build()
	if err != nil {
		return nil, err
	}
	total, err := countQuery.Count(ctx)
	if err != nil {
		return nil, err
	}

	page := &Page{
		ContentType:       req.Bundle,
		Items:             []*document.Document{},
		Total:             total,
		Limit:             limit,
		Offset:            offset,
		HasNext:           offset+limit < total,
		HasPrevious:       offset > 0,
		RequestedLanguage: req.Language,
		ReturnedLanguage:  language,
	}
	if total == 0 {
		return page, nil
	}

	fetchQuery, err := build()
	if err != nil {
		return nil, err
	}
	ids, err := fetchQuery.Sort(sortField, order).Range(offset, limit).Execute(ctx)
	if err != nil {
		return nil, err
	}

	nodes, err := s.store.LoadMultiple(ctx, entity.KindNode, ids)
	if err != nil {
		return nil, err
	}
	for _, node := range nodes {
		doc, err := s.assemble(ctx, node, language)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, doc)
	}
	return page, nil
}

// Get loads one published document by bundle and identifier. Unpublished
// nodes and nodes stored under a different bundle report not found rather
// than leaking unreleased or cross-type records.
func (s *Service) Get(ctx context.Context, req GetRequest) (*document.Document, error) {
	if err := s.checkBundle(ctx, req.Bundle); err != nil {
		return nil, err
	}

	node, err := s.store.Load(ctx, entity.KindNode, req.ID)
	if err != nil {
		return nil, err
	}
	if node.Bundle != req.Bundle {
		return nil, &entity.NotFoundError{Kind: entity.KindNode, Key: strconv.FormatInt(req.ID, 10)}
	}
	if tr := node.Default(); tr == nil || !tr.Published {
		return nil, &entity.NotFoundError{Kind: entity.KindNode, Key: strconv.FormatInt(req.ID, 10)}
	}
	return s.assemble(ctx, node, req.Language)
}

func (s *Service) assemble(ctx context.Context, node *entity.Entity, language string) (*document.Document, error) {
	if node.Bundle == "product" {
		return s.docs.AssembleProduct(ctx, node, language, language)
	}
	return s.docs.Assemble(ctx, node, language, language)
}

func (s *Service) checkBundle(ctx context.Context, bundle string) error {
	if strings.TrimSpace(bundle) == "" {
		return entity.ErrUnknownBundle
	}
	bundles, err := s.store.Bundles(ctx)
	if err != nil {
		return err
	}
	for _, b := range bundles {
		if b.ID == bundle {
			return nil
		}
	}
	return entity.ErrUnknownBundle
}

// splitSortPrefix accepts the "-field" shorthand for descending order.
func splitSortPrefix(field string) (string, string) {
	if rest, ok := strings.CutPrefix(field, "-"); ok {
		return rest, "desc"
	}
	return field, ""
}

func resolveSort(field string) (string, error) {
	if field == "" {
		return "created", nil
	}
	if mapped, ok := sortFields[field]; ok {
		return mapped, nil
	}
	return "", entity.ErrUnknownSortField
}

func resolveOrder(order string) string {
	if strings.EqualFold(order, "asc") {
		return "asc"
	}
	return "desc"
}
