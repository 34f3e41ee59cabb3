package entitybun

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-content-api/entity"
)

// Base columns addressable by listing queries, keyed by the public field
// path names.
var baseColumns = map[string]string{
	"id":       "et.nid",
	"nid":      "et.nid",
	"tid":      "et.nid",
	"type":     "et.bundle",
	"vid":      "et.bundle",
	"bundle":   "et.bundle",
	"langcode": "et.langcode",
	"status":   "et.published",
	"title":    "et.title",
	"name":     "et.title",
	"label":    "et.title",
	"created":  "et.created",
	"changed":  "et.updated",
	"updated":  "et.updated",
	"weight":   "et.weight",
}

type condition struct {
	field string
	value any
	op    string
}

type group struct {
	conjunction string
	conditions  []condition
	groups      []*group
}

// bunQuery renders the entity query contract onto translation rows. When no
// language condition is present the query pins itself to default-language
// variants so one entity never matches twice.
type bunQuery struct {
	db        *bun.DB
	kind      entity.Kind
	root      group
	sortField string
	sortDir   string
	offset    int
	limit     int
	hasSort   bool
	hasRange  bool
}

func (q *bunQuery) Condition(field string, value any, op ...string) entity.Query {
	operator := entity.OpEquals
	if len(op) > 0 && op[0] != "" {
		operator = op[0]
	}
	q.root.conditions = append(q.root.conditions, condition{field: field, value: value, op: operator})
	return q
}

func (q *bunQuery) ConditionGroup(conjunction string, build func(entity.Query)) entity.Query {
	sub := &bunQuery{db: q.db, kind: q.kind}
	build(sub)
	nested := sub.root
	nested.conjunction = conjunction
	q.root.groups = append(q.root.groups, &nested)
	return q
}

func (q *bunQuery) Range(offset, limit int) entity.Query {
	q.offset = offset
	q.limit = limit
	q.hasRange = true
	return q
}

func (q *bunQuery) Sort(field, direction string) entity.Query {
	q.sortField = field
	q.sortDir = direction
	q.hasSort = true
	return q
}

func (q *bunQuery) Execute(ctx context.Context) ([]int64, error) {
	sel, err := q.buildSelect()
	if err != nil {
		return nil, err
	}

	if q.hasSort {
		column, ok := baseColumns[q.sortField]
		if !ok {
			return nil, entity.ErrUnknownSortField
		}
		direction := "ASC"
		if strings.EqualFold(q.sortDir, "desc") {
			direction = "DESC"
		}
		sel = sel.OrderExpr("? ?", bun.Safe(column), bun.Safe(direction)).
			OrderExpr("et.nid ASC")
	} else {
		sel = sel.OrderExpr("et.nid ASC")
	}

	if q.hasRange {
		if q.limit > 0 {
			sel = sel.Limit(q.limit)
		}
		if q.offset > 0 {
			sel = sel.Offset(q.offset)
		}
	}

	var ids []int64
	if err := sel.ColumnExpr("et.nid").Scan(ctx, &ids); err != nil {
		return nil, wrapStorageError(err, "query")
	}
	return ids, nil
}

func (q *bunQuery) Count(ctx context.Context) (int, error) {
	sel, err := q.buildSelect()
	if err != nil {
		return 0, err
	}
	count, err := sel.Count(ctx)
	if err != nil {
		return 0, wrapStorageError(err, "count")
	}
	return count, nil
}

func (q *bunQuery) buildSelect() (*bun.SelectQuery, error) {
	sel := q.db.NewSelect().Model((*TranslationRecord)(nil)).
		Where("et.kind = ?", string(q.kind))

	if !q.hasLanguageCondition(&q.root) {
		sel = sel.Where("et.is_default = ?", true)
	}

	sql, args, err := q.renderGroup(&q.root, "AND")
	if err != nil {
		return nil, err
	}
	if sql != "" {
		sel = sel.Where(sql, args...)
	}
	return sel, nil
}

func (q *bunQuery) hasLanguageCondition(g *group) bool {
	for _, cond := range g.conditions {
		if cond.field == "langcode" {
			return true
		}
	}
	for _, nested := range g.groups {
		if q.hasLanguageCondition(nested) {
			return true
		}
	}
	return false
}

func (q *bunQuery) renderGroup(g *group, conjunction string) (string, []any, error) {
	if g.conjunction != "" {
		conjunction = g.conjunction
	}

	parts := []string{}
	args := []any{}

	for _, cond := range g.conditions {
		sql, condArgs, err := renderCondition(cond)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, condArgs...)
	}
	for _, nested := range g.groups {
		sql, nestedArgs, err := q.renderGroup(nested, "AND")
		if err != nil {
			return "", nil, err
		}
		if sql != "" {
			parts = append(parts, "("+sql+")")
			args = append(args, nestedArgs...)
		}
	}

	if len(parts) == 0 {
		return "", nil, nil
	}
	return strings.Join(parts, " "+conjunction+" "), args, nil
}

func renderCondition(cond condition) (string, []any, error) {
	if column, ok := baseColumns[cond.field]; ok {
		return renderComparison(column, cond)
	}

	fieldName, itemColumn := splitFieldPath(cond.field)
	comparison, args, err := renderComparison("fi."+itemColumn, cond)
	if err != nil {
		return "", nil, err
	}
	sql := "EXISTS (SELECT 1 FROM field_items AS fi WHERE fi.nid = et.nid" +
		" AND fi.kind = et.kind AND fi.langcode = et.langcode" +
		" AND fi.field_name = ? AND " + comparison + ")"
	return sql, append([]any{fieldName}, args...), nil
}

// splitFieldPath maps "field_x", "field_x.value", and "field_x.target_id"
// onto the item column being compared. Body text lives in items too.
func splitFieldPath(path string) (string, string) {
	name, sub, found := strings.Cut(path, ".")
	if !found || sub == "value" {
		return name, "value"
	}
	if sub == "target_id" {
		return name, "target_id"
	}
	return name, "value"
}

func renderComparison(column string, cond condition) (string, []any, error) {
	switch cond.op {
	case entity.OpEquals, entity.OpNotEqual, entity.OpGreater, entity.OpLess:
		return fmt.Sprintf("%s %s ?", column, cond.op), []any{cond.value}, nil

	case entity.OpLike:
		return column + " LIKE ?", []any{cond.value}, nil

	case entity.OpIn:
		values := toAnySlice(cond.value)
		if len(values) == 0 {
			return "1 = 0", nil, nil
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
		return column + " IN (" + placeholders + ")", values, nil

	case entity.OpBetween:
		values := toAnySlice(cond.value)
		if len(values) != 2 {
			return "", nil, fmt.Errorf("entitybun: BETWEEN requires two values, got %d", len(values))
		}
		return column + " BETWEEN ? AND ?", values, nil

	default:
		return "", nil, fmt.Errorf("entitybun: unsupported operator %q", cond.op)
	}
}

func toAnySlice(value any) []any {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return []any{value}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
