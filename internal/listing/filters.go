package listing

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-content-api/entity"
)

// Query parameters consumed by pagination, language, and sorting rather than
// field filtering.
var reservedParams = map[string]struct{}{
	"lang":   {},
	"limit":  {},
	"offset": {},
	"sort":   {},
	"order":  {},
	"search": {},
	"q":      {},
}

// applyFilters translates raw query parameters into store conditions using
// the bundle's declared field types. Parameters naming no declared field are
// ignored so unknown keys can never leak into storage queries.
func (s *Service) applyFilters(ctx context.Context, q entity.Query, kind entity.Kind, bundle string, params map[string]string) error {
	if len(params) == 0 {
		return nil
	}

	defs, err := s.store.FieldDefinitions(ctx, kind, bundle)
	if err != nil {
		return err
	}

	for name, raw := range params {
		if _, reserved := reservedParams[name]; reserved {
			continue
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		def, ok := defs[name]
		if !ok {
			s.log.Debug("ignoring unknown filter", "bundle", bundle, "param", name)
			continue
		}
		applyFieldFilter(q, def, value)
	}
	return nil
}

func applyFieldFilter(q entity.Query, def entity.FieldDefinition, value string) {
	switch def.Type {
	case entity.FieldReference, entity.FieldParagraphs:
		if id, err := strconv.ParseInt(value, 10, 64); err == nil {
			q.Condition(def.Name+".target_id", id)
		}

	case entity.FieldBoolean:
		q.Condition(def.Name, truthyParam(value))

	case entity.FieldInteger, entity.FieldDecimal, entity.FieldFloat:
		if min, max, ok := numericRange(value); ok {
			q.Condition(def.Name, []float64{min, max}, entity.OpBetween)
			return
		}
		if number, err := strconv.ParseFloat(value, 64); err == nil {
			q.Condition(def.Name, number)
		}

	case entity.FieldListString, entity.FieldListInteger:
		q.Condition(def.Name, value)

	default:
		q.Condition(def.Name, "%"+value+"%", entity.OpLike)
	}
}

// numericRange parses "min,max" range filters.
func numericRange(value string) (float64, float64, bool) {
	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	min, errMin := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	max, errMax := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errMin != nil || errMax != nil {
		return 0, 0, false
	}
	return min, max, true
}

func truthyParam(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
