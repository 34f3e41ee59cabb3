package document

import (
	"context"
	"strings"

	"github.com/goliatone/go-content-api/entity"
)

// AssembleTerm builds the normalized shape for one taxonomy term, including
// ancestor chain, custom fields, and per-language name variants.
func (s *Service) AssembleTerm(ctx context.Context, e *entity.Entity, target, active string) (*Term, error) {
	lc := langContext{target: target, active: active}
	tr := lc.resolve(e)
	if tr == nil {
		return nil, &NotFoundError{Resource: "taxonomy_term", Key: e.Bundle}
	}

	term := &Term{
		ID:         e.ID,
		UUID:       e.UUID.String(),
		Name:       tr.Title,
		Vocabulary: e.Bundle,
		Language:   tr.Language,
		Weight:     tr.Weight,
		Parents:    []TermParent{},
	}

	if items := tr.Field("description"); len(items) > 0 {
		desc := longText(items[0])
		term.Description = &desc
	}

	fields, err := s.termFields(ctx, lc, e, tr)
	if err != nil {
		return nil, err
	}
	term.Fields = fields

	parents, err := s.store.TermParents(ctx, e.ID)
	if err == nil {
		for _, parent := range parents {
			parentTr := lc.resolve(parent)
			term.Parents = append(term.Parents, TermParent{
				ID:   parent.ID,
				Name: parentTr.Title,
				UUID: parent.UUID.String(),
			})
		}
	}

	term.Translations = termTranslations(e)
	return term, nil
}

// termFields formats the term's custom fields. Terms expose the color code
// directly so listings can swatch without a second lookup.
func (s *Service) termFields(ctx context.Context, lc langContext, e *entity.Entity, tr *entity.Translation) (map[string]FieldValue, error) {
	defs, err := s.store.FieldDefinitions(ctx, e.Kind, e.Bundle)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]FieldValue)
	for _, name := range sortedFieldNames(tr.Fields) {
		if !strings.HasPrefix(name, "field_") {
			continue
		}
		items := tr.Field(name)
		if len(items) == 0 {
			continue
		}
		def, ok := defs[name]
		if !ok {
			def = entity.FieldDefinition{Name: name}
		}
		value, err := s.formatField(ctx, lc, def, items, 0)
		if err != nil {
			return nil, err
		}
		fields[name] = value
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

func termTranslations(e *entity.Entity) []TermTranslation {
	out := make([]TermTranslation, 0, len(e.Translations))
	for _, code := range e.Languages() {
		tr := e.Translations[code]
		out = append(out, TermTranslation{
			Langcode: code,
			Name:     tr.Title,
			TermName: tr.Title,
		})
	}
	return out
}
