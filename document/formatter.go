package document

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-content-api/entity"
)

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const dateTimeDisplayLayout = "2006-01-02 15:04:05"

// FormatField normalizes one field item list according to its declared type.
// The language context is evaluated independently for every referenced
// entity; formatting is pure with respect to the store contents, so repeated
// calls with the same context yield structurally identical values.
func (s *Service) FormatField(ctx context.Context, lc langContext, def entity.FieldDefinition, items []entity.Item) (FieldValue, error) {
	return s.formatField(ctx, lc, def, items, 0)
}

func (s *Service) formatField(ctx context.Context, lc langContext, def entity.FieldDefinition, items []entity.Item, depth int) (FieldValue, error) {
	if depth > s.maxDepth {
		s.log.Warn("field recursion depth exceeded", "field", def.Name, "depth", depth)
		return List{}, nil
	}
	if len(items) == 0 {
		return List{}, nil
	}

	switch def.Type {
	case entity.FieldTextLong, entity.FieldTextWithSummary:
		first := items[0]
		return longText(first), nil

	case entity.FieldImage:
		values := List{}
		for _, item := range items {
			img, err := s.imageValue(ctx, item)
			if err != nil || img == nil {
				continue
			}
			values = append(values, *img)
		}
		return collapse(values), nil

	case entity.FieldFile:
		values := List{}
		for _, item := range items {
			file, err := s.fileValue(ctx, item)
			if err != nil || file == nil {
				continue
			}
			values = append(values, *file)
		}
		return collapse(values), nil

	case entity.FieldReference:
		values := List{}
		for _, item := range items {
			ref, err := s.referenceValue(ctx, lc, def, item)
			if err != nil || ref == nil {
				continue
			}
			values = append(values, *ref)
		}
		return collapse(values), nil

	case entity.FieldParagraphs:
		values := List{}
		for _, item := range items {
			block, err := s.paragraphValue(ctx, lc, item, depth)
			if err != nil || block == nil {
				continue
			}
			values = append(values, *block)
		}
		return collapse(values), nil

	case entity.FieldDateTime:
		values := List{}
		for _, item := range items {
			values = append(values, dateTimeValue(item))
		}
		return collapse(values), nil

	case entity.FieldBoolean:
		return Boolean(truthy(items[0].Value)), nil

	case entity.FieldInteger:
		return Integer(toInt64(items[0].Value)), nil

	case entity.FieldDecimal, entity.FieldFloat:
		return Decimal(toFloat64(items[0].Value)), nil

	default:
		// list_string, list_integer, plain strings, and anything the
		// dispatch table does not know pass the raw values through.
		values := List{}
		for _, item := range items {
			values = append(values, Scalar{Value: item.Value})
		}
		return collapse(values), nil
	}
}

// collapse applies the uniform single-value rule: exactly one item unwraps,
// zero or many stay a sequence.
func collapse(values List) FieldValue {
	if len(values) == 1 {
		return values[0]
	}
	return values
}

func longText(item entity.Item) LongText {
	text := LongText{
		Value:     stringValue(item.Value),
		Processed: item.Processed,
		Format:    item.Format,
	}
	if item.Summary != "" {
		summary := item.Summary
		text.Summary = &summary
	}
	return text
}

func (s *Service) imageValue(ctx context.Context, item entity.Item) (*Image, error) {
	file, err := s.loadFile(ctx, item.TargetID)
	if err != nil || file == nil {
		return nil, err
	}

	img := &Image{
		URL:      s.urls.FileURL(file.URI),
		Alt:      item.Alt,
		Title:    item.Title,
		Width:    item.Width,
		Height:   item.Height,
		Filesize: file.Size,
		MimeType: file.MimeType,
	}

	styles, err := s.store.ImageStyles(ctx)
	if err == nil && len(styles) > 0 {
		derived := make(map[string]string, len(styles))
		for _, style := range styles {
			derived[style.Name] = s.urls.StyledURL(style.Name, file.URI)
		}
		img.ImageStyles = derived
	}
	return img, nil
}

func (s *Service) fileValue(ctx context.Context, item entity.Item) (*File, error) {
	file, err := s.loadFile(ctx, item.TargetID)
	if err != nil || file == nil {
		return nil, err
	}
	return &File{
		URL:         s.urls.FileURL(file.URI),
		Filename:    file.Filename,
		Filesize:    file.Size,
		MimeType:    file.MimeType,
		Description: item.Description,
	}, nil
}

func (s *Service) loadFile(ctx context.Context, id int64) (*entity.FileInfo, error) {
	if id == 0 {
		return nil, nil
	}
	record, err := s.store.Load(ctx, entity.KindFile, id)
	if err != nil {
		return nil, nil
	}
	return record.File, nil
}

func (s *Service) referenceValue(ctx context.Context, lc langContext, def entity.FieldDefinition, item entity.Item) (*Reference, error) {
	kind := def.Target
	if kind == "" {
		kind = entity.KindNode
	}
	target, err := s.store.Load(ctx, kind, item.TargetID)
	if err != nil {
		return nil, nil
	}

	tr := lc.resolve(target)
	if tr == nil {
		return nil, nil
	}

	ref := &Reference{
		TargetID: target.ID,
		ID:       target.ID,
		Type:     string(target.Kind),
		Bundle:   target.Bundle,
		Label:    tr.Title,
		UUID:     target.UUID.String(),
	}

	switch target.Kind {
	case entity.KindMedia:
		s.decorateMedia(ctx, ref, target, tr)
	case entity.KindTerm:
		decorateTerm(ref, tr)
	}
	return ref, nil
}

// decorateMedia probes the configured candidate sub-fields on the media
// translation and attaches the first non-empty match.
func (s *Service) decorateMedia(ctx context.Context, ref *Reference, media *entity.Entity, tr *entity.Translation) {
	switch media.Bundle {
	case "image":
		for _, name := range s.imageFields {
			items := tr.Field(name)
			if len(items) == 0 {
				continue
			}
			img, err := s.imageValue(ctx, items[0])
			if err == nil && img != nil {
				ref.Image = img
				return
			}
		}
	case "document", "file":
		for _, name := range s.fileFields {
			items := tr.Field(name)
			if len(items) == 0 {
				continue
			}
			file, err := s.fileValue(ctx, items[0])
			if err == nil && file != nil {
				ref.File = file
				return
			}
		}
	}
}

func decorateTerm(ref *Reference, tr *entity.Translation) {
	if items := tr.Field("field_t_code"); len(items) > 0 {
		ref.ColorCode = stringValue(items[0].Value)
	}
	if items := tr.Field("description"); len(items) > 0 {
		text := longText(items[0])
		ref.Description = &text
	}
}

func (s *Service) paragraphValue(ctx context.Context, lc langContext, item entity.Item, depth int) (*Paragraph, error) {
	target, err := s.store.Load(ctx, entity.KindParagraph, item.TargetID)
	if err != nil {
		return nil, nil
	}

	fields, err := s.nestedFields(ctx, lc, target, depth+1)
	if err != nil {
		return nil, err
	}
	return &Paragraph{
		ID:     target.ID,
		Type:   target.Bundle,
		UUID:   target.UUID.String(),
		Fields: fields,
	}, nil
}

// nestedFields formats the full field set of a nested entity (paragraph or
// product variant), skipping system fields.
func (s *Service) nestedFields(ctx context.Context, lc langContext, e *entity.Entity, depth int) (map[string]FieldValue, error) {
	tr := lc.resolve(e)
	if tr == nil {
		return map[string]FieldValue{}, nil
	}

	defs, err := s.store.FieldDefinitions(ctx, e.Kind, e.Bundle)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]FieldValue)
	for _, name := range sortedFieldNames(tr.Fields) {
		if _, skip := paragraphSystemFields[name]; skip {
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
		value, err := s.formatField(ctx, lc, def, items, depth)
		if err != nil {
			return nil, err
		}
		fields[name] = value
	}
	return fields, nil
}

func dateTimeValue(item entity.Item) DateTime {
	raw := stringValue(item.Value)
	value := DateTime{Value: raw, Formatted: raw}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			value.Timestamp = parsed.Unix()
			value.Formatted = parsed.Format(dateTimeDisplayLayout)
			break
		}
	}
	return value
}

func sortedFieldNames(fields map[string][]entity.Item) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func truthy(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case int:
		return n != 0
	case int64:
		return n != 0
	case float64:
		return n != 0
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(n))
		return err == nil && parsed
	default:
		return v != nil
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float32:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		parsed, _ := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return parsed
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	case string:
		parsed, _ := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return parsed
	default:
		return 0
	}
}
