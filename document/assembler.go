package document

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-content-api/entity"
)

var nodePathPattern = regexp.MustCompile(`^/node/(\d+)$`)

// Assemble produces the normalized document for one node. Target is the
// requested language (may be empty) and active is the request language used
// as the intermediate fallback tier.
func (s *Service) Assemble(ctx context.Context, e *entity.Entity, target, active string) (*Document, error) {
	lc := langContext{target: target, active: active}
	tr := lc.resolve(e)
	if tr == nil {
		return nil, &NotFoundError{Resource: string(e.Kind), Key: strconv.FormatInt(e.ID, 10)}
	}

	doc := &Document{
		ID:        e.ID,
		Type:      e.Bundle,
		Title:     tr.Title,
		Language:  tr.Language,
		Created:   tr.Created,
		Updated:   tr.Updated,
		Published: tr.Published,
	}
	if tr.AuthorID != 0 || tr.AuthorName != "" {
		doc.Author = &Author{ID: tr.AuthorID, Name: tr.AuthorName}
	}

	if items := tr.Field("body"); len(items) > 0 {
		body := longText(items[0])
		doc.Body = &body
	}

	fields, err := s.customFields(ctx, lc, e, tr)
	if err != nil {
		return nil, err
	}
	doc.Fields = fields

	languageNames, err := s.languageNames(ctx)
	if err != nil {
		return nil, err
	}
	doc.Translations = translationSummaries(e, languageNames)
	doc.URLs = s.publishedURLs(e)
	doc.URL = convenienceURL(doc.URLs, tr.Language)

	return doc, nil
}

// ByPath resolves a public path to its published node and assembles the
// document. Draft nodes report not found. The echoed page_path is the path
// exactly as requested.
func (s *Service) ByPath(ctx context.Context, path, target, active string) (*Document, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	internal, err := s.store.ResolveAlias(ctx, path)
	if err != nil {
		return nil, err
	}

	match := nodePathPattern.FindStringSubmatch(internal)
	if match == nil {
		return nil, &InvalidPathError{Path: path}
	}
	id, _ := strconv.ParseInt(match[1], 10, 64)

	node, err := s.store.Load(ctx, entity.KindNode, id)
	if err != nil {
		return nil, &NotFoundError{Resource: "node", Key: path}
	}
	if tr := node.Default(); tr == nil || !tr.Published {
		return nil, &NotFoundError{Resource: "node", Key: path}
	}

	doc, err := s.Assemble(ctx, node, target, active)
	if err != nil {
		return nil, err
	}
	doc.PagePath = path
	return doc, nil
}

// customFields formats every field_ prefixed field on the resolved
// translation, in sorted name order so output is deterministic.
func (s *Service) customFields(ctx context.Context, lc langContext, e *entity.Entity, tr *entity.Translation) (map[string]FieldValue, error) {
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

func (s *Service) languageNames(ctx context.Context) (map[string]string, error) {
	languages, err := s.store.Languages(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(languages))
	for _, lang := range languages {
		names[lang.Code] = lang.Name
	}
	return names, nil
}

// translationSummaries lists every existing variant regardless of the
// resolved language, so clients can offer a language switcher.
func translationSummaries(e *entity.Entity, languageNames map[string]string) []TranslationInfo {
	out := make([]TranslationInfo, 0, len(e.Translations))
	for _, code := range e.Languages() {
		tr := e.Translations[code]
		out = append(out, TranslationInfo{
			Langcode:  code,
			Name:      languageNames[code],
			Title:     tr.Title,
			Published: tr.Published,
		})
	}
	return out
}

// publishedURLs builds the per-language URL map. Only published variants get
// an entry; the API URL always carries its language as a query parameter.
func (s *Service) publishedURLs(e *entity.Entity) map[string]URLSet {
	urls := make(map[string]URLSet)
	for _, code := range e.Languages() {
		tr := e.Translations[code]
		if !tr.Published {
			continue
		}
		urls[code] = URLSet{
			Canonical: s.urls.Canonical(e, code),
			Edit:      s.urls.Edit(e, code),
			API:       s.urls.API(e.Bundle, e.ID, code),
		}
	}
	return urls
}

// convenienceURL picks a single canonical URL: the resolved language when it
// has one, then English, then the lexicographically first entry.
func convenienceURL(urls map[string]URLSet, resolved string) string {
	if set, ok := urls[resolved]; ok {
		return set.Canonical
	}
	if set, ok := urls["en"]; ok {
		return set.Canonical
	}
	codes := make([]string, 0, len(urls))
	for code := range urls {
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return ""
	}
	sort.Strings(codes)
	return urls[codes[0]].Canonical
}
