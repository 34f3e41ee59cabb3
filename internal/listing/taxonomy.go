package listing

import (
	"context"
	"strings"

	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
)

// Sortable base columns for vocabulary listings.
var termSortFields = map[string]string{
	"weight":  "weight",
	"name":    "name",
	"created": "created",
	"id":      "tid",
	"tid":     "tid",
}

// TermsRequest describes one vocabulary listing. Sort accepts the same
// "-field" descending shorthand as content listings.
type TermsRequest struct {
	Vocabulary string
	Language   string
	Limit      int
	Offset     int
	Sort       string
	Order      string
}

// TermPage is one vocabulary listing window.
type TermPage struct {
	Vocabulary      string           `json:"vocabulary"`
	VocabularyLabel string           `json:"vocabulary_label"`
	Items           []*document.Term `json:"items"`
	Total           int              `json:"total"`
	Limit           int              `json:"limit"`
	Offset          int              `json:"offset"`
	HasNext         bool             `json:"has_next"`
	HasPrevious     bool             `json:"has_previous"`
}

// Terms lists the terms of one vocabulary, by weight ascending unless the
// request sorts otherwise.
func (s *Service) Terms(ctx context.Context, req TermsRequest) (*TermPage, error) {
	vocabulary, err := s.lookupVocabulary(ctx, req.Vocabulary)
	if err != nil {
		return nil, err
	}

	sort, orderHint := splitSortPrefix(req.Sort)
	sortField, err := resolveTermSort(sort)
	if err != nil {
		return nil, err
	}
	if req.Order == "" {
		req.Order = orderHint
	}
	order := "asc"
	if req.Order != "" {
		order = resolveOrder(req.Order)
	}

	limit, offset := clampRange(req.Limit, req.Offset)

	total, err := s.store.Query(entity.KindTerm).
		Condition("vid", req.Vocabulary).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	page := &TermPage{
		Vocabulary:      req.Vocabulary,
		VocabularyLabel: vocabulary.Label,
		Items:           []*document.Term{},
		Total:           total,
		Limit:           limit,
		Offset:          offset,
		HasNext:         offset+limit < total,
		HasPrevious:     offset > 0,
	}
	if total == 0 {
		return page, nil
	}

	ids, err := s.store.Query(entity.KindTerm).
		Condition("vid", req.Vocabulary).
		Sort(sortField, order).
		Range(offset, limit).
		Execute(ctx)
	if err != nil {
		return nil, err
	}

	terms, err := s.store.LoadMultiple(ctx, entity.KindTerm, ids)
	if err != nil {
		return nil, err
	}
	for _, record := range terms {
		term, err := s.docs.AssembleTerm(ctx, record, req.Language, req.Language)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, term)
	}
	return page, nil
}

func (s *Service) lookupVocabulary(ctx context.Context, vocabulary string) (entity.Vocabulary, error) {
	if strings.TrimSpace(vocabulary) == "" {
		return entity.Vocabulary{}, entity.ErrUnknownVocabulary
	}
	vocabularies, err := s.store.Vocabularies(ctx)
	if err != nil {
		return entity.Vocabulary{}, err
	}
	for _, v := range vocabularies {
		if v.ID == vocabulary {
			return v, nil
		}
	}
	return entity.Vocabulary{}, entity.ErrUnknownVocabulary
}

func resolveTermSort(field string) (string, error) {
	if field == "" {
		return "weight", nil
	}
	if mapped, ok := termSortFields[field]; ok {
		return mapped, nil
	}
	return "", entity.ErrUnknownSortField
}
