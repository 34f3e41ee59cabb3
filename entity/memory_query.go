package entity

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

type memCondition struct {
	field string
	op    string
	value any
}

type memGroup struct {
	conjunction string
	conditions  []memCondition
	groups      []*memGroup
}

func (g *memGroup) match(e *Entity, tr *Translation) bool {
	and := g.conjunction != ConjOr
	for _, cond := range g.conditions {
		ok := matchCondition(e, tr, cond)
		if and && !ok {
			return false
		}
		if !and && ok {
			return true
		}
	}
	for _, child := range g.groups {
		ok := child.match(e, tr)
		if and && !ok {
			return false
		}
		if !and && ok {
			return true
		}
	}
	return and
}

type memoryQuery struct {
	store  *MemoryStore
	kind   Kind
	root   memGroup
	offset int
	limit  int
	sorts  []memSort
}

type memSort struct {
	field     string
	direction string
}

func (q *memoryQuery) Condition(field string, value any, op ...string) Query {
	operator := OpEquals
	if len(op) > 0 && strings.TrimSpace(op[0]) != "" {
		operator = strings.ToUpper(strings.TrimSpace(op[0]))
	}
	q.root.conditions = append(q.root.conditions, memCondition{field: field, op: operator, value: value})
	return q
}

func (q *memoryQuery) ConditionGroup(conjunction string, build func(Query)) Query {
	child := &memoryQuery{store: q.store, kind: q.kind}
	child.root.conjunction = strings.ToUpper(strings.TrimSpace(conjunction))
	if build != nil {
		build(child)
	}
	group := child.root
	q.root.groups = append(q.root.groups, &group)
	return q
}

func (q *memoryQuery) Range(offset, limit int) Query {
	q.offset = offset
	q.limit = limit
	return q
}

func (q *memoryQuery) Sort(field, direction string) Query {
	q.sorts = append(q.sorts, memSort{field: field, direction: strings.ToUpper(strings.TrimSpace(direction))})
	return q
}

func (q *memoryQuery) Execute(_ context.Context) ([]int64, error) {
	matches := q.collect()
	q.order(matches)

	offset := q.offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matches) {
		return nil, nil
	}
	matches = matches[offset:]
	if q.limit >= 0 && q.limit < len(matches) {
		matches = matches[:q.limit]
	}

	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.entity.ID
	}
	return ids, nil
}

func (q *memoryQuery) Count(_ context.Context) (int, error) {
	return len(q.collect()), nil
}

type memMatch struct {
	entity *Entity
	tr     *Translation
}

// collect evaluates the condition tree against every entity of the query
// kind. A top-level langcode equality picks the translation every other
// condition is evaluated against; otherwise the default variant is used.
func (q *memoryQuery) collect() []memMatch {
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()

	evalLang := ""
	for _, cond := range q.root.conditions {
		if cond.field == "langcode" && cond.op == OpEquals {
			evalLang = fmt.Sprint(cond.value)
		}
	}

	var matches []memMatch
	for _, e := range q.store.entities[q.kind] {
		tr := e.Default()
		if evalLang != "" {
			variant, ok := e.Translations[evalLang]
			if !ok {
				continue
			}
			tr = variant
		}
		if tr == nil {
			continue
		}
		if q.root.match(e, tr) {
			matches = append(matches, memMatch{entity: e, tr: tr})
		}
	}
	return matches
}

func (q *memoryQuery) order(matches []memMatch) {
	sorts := q.sorts
	sort.SliceStable(matches, func(i, j int) bool {
		for _, s := range sorts {
			cmp := compareSortKeys(sortKey(matches[i], s.field), sortKey(matches[j], s.field))
			if cmp == 0 {
				continue
			}
			if s.direction == "DESC" {
				return cmp > 0
			}
			return cmp < 0
		}
		return matches[i].entity.ID < matches[j].entity.ID
	})
}

func sortKey(m memMatch, field string) any {
	switch field {
	case "nid", "id", "tid":
		return m.entity.ID
	case "title", "name", "label":
		return m.tr.Title
	case "created":
		return m.tr.Created
	case "changed", "updated":
		return m.tr.Updated
	case "weight":
		return m.tr.Weight
	case "langcode":
		return m.tr.Language
	default:
		if items := m.tr.Field(strings.TrimSuffix(field, ".value")); len(items) > 0 {
			return items[0].Value
		}
		return nil
	}
}

func compareSortKeys(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(b)))
}

func matchCondition(e *Entity, tr *Translation, cond memCondition) bool {
	values := fieldValues(e, tr, cond.field)
	switch cond.op {
	case OpEquals:
		return anyEquals(values, cond.value)
	case OpNotEqual:
		return !anyEquals(values, cond.value)
	case OpLike:
		pattern := fmt.Sprint(cond.value)
		for _, v := range values {
			if s, ok := v.(string); ok && likeMatch(s, pattern) {
				return true
			}
		}
		return false
	case OpIn:
		for _, want := range toSlice(cond.value) {
			if anyEquals(values, want) {
				return true
			}
		}
		return false
	case OpBetween:
		bounds := toSlice(cond.value)
		if len(bounds) != 2 {
			return false
		}
		lo, lok := toFloat(bounds[0])
		hi, hok := toFloat(bounds[1])
		if !lok || !hok {
			return false
		}
		for _, v := range values {
			if f, ok := toFloat(v); ok && f >= lo && f <= hi {
				return true
			}
		}
		return false
	case OpGreater, OpLess:
		want, ok := toFloat(cond.value)
		if !ok {
			return false
		}
		for _, v := range values {
			f, ok := toFloat(v)
			if !ok {
				continue
			}
			if cond.op == OpGreater && f > want {
				return true
			}
			if cond.op == OpLess && f < want {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// fieldValues resolves a condition field path to the candidate values on one
// entity variant.
func fieldValues(e *Entity, tr *Translation, field string) []any {
	switch field {
	case "nid", "id", "tid":
		return []any{e.ID}
	case "type", "vid", "bundle":
		return []any{e.Bundle}
	case "langcode":
		return []any{tr.Language}
	case "status":
		return []any{tr.Published}
	case "title", "name", "label":
		return []any{tr.Title}
	case "created":
		return []any{tr.Created}
	case "changed", "updated":
		return []any{tr.Updated}
	case "weight":
		return []any{tr.Weight}
	}

	name := field
	column := "value"
	if idx := strings.LastIndex(field, "."); idx > 0 {
		name = field[:idx]
		column = field[idx+1:]
	}
	items := tr.Field(name)
	out := make([]any, 0, len(items))
	for _, item := range items {
		switch column {
		case "target_id":
			out = append(out, item.TargetID)
		default:
			if item.Value != nil {
				out = append(out, item.Value)
			} else if item.TargetID != 0 {
				// Bare reference fields compare on target id.
				out = append(out, item.TargetID)
			}
		}
	}
	return out
}

func anyEquals(values []any, want any) bool {
	for _, v := range values {
		if looseEquals(v, want) {
			return true
		}
	}
	return false
}

// looseEquals mirrors the permissive comparisons of the storage layer:
// numerics compare by value, booleans accept 0/1, everything else compares
// as strings.
func looseEquals(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
	}
	return strings.EqualFold(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toSlice(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
