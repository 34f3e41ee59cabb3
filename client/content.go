package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrAliasNotFound reports that no candidate document matched an alias scan.
var ErrAliasNotFound = errors.New("client: no document matches alias")

// ListOptions tunes a content listing call. Filters pass through to the
// server-side field filter translator.
type ListOptions struct {
	Limit   int
	Offset  int
	Sort    string
	Order   string
	Filters map[string]string
}

// SearchOptions tunes a search call. Type scopes the search to one content
// type, which on the server widens the product match to its detail fields.
type SearchOptions struct {
	Type   string
	Limit  int
	Offset int
}

// LanguageInfo is the configured language catalog.
type LanguageInfo struct {
	Languages []Language `json:"languages"`
	Default   string     `json:"default_language"`
}

// Language is one configured site language.
type Language struct {
	Code      string `json:"langcode"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Weight    int    `json:"weight"`
}

// SearchResult is a normalized search window.
type SearchResult struct {
	Query       string     `json:"query"`
	Type        string     `json:"type"`
	Items       []Document `json:"items"`
	Total       int        `json:"total"`
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
	Language    string     `json:"language"`
}

// TermList is one vocabulary listing.
type TermList struct {
	Vocabulary string     `json:"vocabulary"`
	Items      []Document `json:"items"`
	Total      int        `json:"total"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

// GetPage resolves a public path to its document.
func (c *Client) GetPage(ctx context.Context, path string) (Document, error) {
	cleaned := strings.Trim(strings.TrimSpace(path), "/")
	raw, err := c.get(ctx, c.contentCache, "/page/"+cleaned, nil)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// List fetches one window of a content type listing.
func (c *Client) List(ctx context.Context, contentType string, opts ListOptions) (*ListResult, error) {
	params := url.Values{}
	intParam(params, "limit", opts.Limit)
	intParam(params, "offset", opts.Offset)
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}
	if opts.Order != "" {
		params.Set("order", opts.Order)
	}
	for name, value := range opts.Filters {
		params.Set(name, value)
	}

	raw, err := c.get(ctx, c.contentCache, "/content/"+url.PathEscape(contentType), params)
	if err != nil {
		return nil, err
	}
	return normalizeList(raw)
}

// Get fetches one document by content type and identifier.
func (c *Client) Get(ctx context.Context, contentType string, id int64) (Document, error) {
	path := fmt.Sprintf("/content/%s/%d", url.PathEscape(contentType), id)
	raw, err := c.get(ctx, c.contentCache, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// Languages fetches the configured language catalog.
func (c *Client) Languages(ctx context.Context) (*LanguageInfo, error) {
	raw, err := c.get(ctx, c.contentCache, "/languages", nil)
	if err != nil {
		return nil, err
	}
	var info LanguageInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("client: decode languages: %w", err)
	}
	return &info, nil
}

// Search runs a keyword search.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	if opts.Type != "" {
		params.Set("type", opts.Type)
	}
	intParam(params, "limit", opts.Limit)
	intParam(params, "offset", opts.Offset)

	raw, err := c.get(ctx, c.searchCache, "/search", params)
	if err != nil {
		return nil, err
	}
	var result SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("client: decode search result: %w", err)
	}
	return &result, nil
}

// Stats fetches the aggregate site snapshot.
func (c *Client) Stats(ctx context.Context) (Document, error) {
	raw, err := c.get(ctx, c.statsCache, "/stats", nil)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// Taxonomy lists the terms of one vocabulary.
func (c *Client) Taxonomy(ctx context.Context, vocabulary string) (*TermList, error) {
	raw, err := c.get(ctx, c.contentCache, "/taxonomy/"+url.PathEscape(vocabulary), nil)
	if err != nil {
		return nil, err
	}
	var list TermList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("client: decode term list: %w", err)
	}
	return &list, nil
}

// GetByAlias scans a bounded window of one content type and returns the
// document whose URL ends with the alias's final path segment. Matching runs
// in three passes: the canonical URL of the active language, any language's
// canonical URL, then the single top-level url field.
func (c *Client) GetByAlias(ctx context.Context, contentType, alias string) (Document, error) {
	segment := finalSegment(alias)
	if segment == "" {
		return nil, ErrAliasNotFound
	}

	list, err := c.List(ctx, contentType, ListOptions{Limit: aliasScanLimit})
	if err != nil {
		return nil, err
	}

	lang := c.Language()
	for _, doc := range list.Items {
		if matchesLanguageCanonical(doc, lang, segment) {
			return doc, nil
		}
	}
	for _, doc := range list.Items {
		if documentMatchesSegment(doc, segment) {
			return doc, nil
		}
	}
	for _, doc := range list.Items {
		if single, ok := doc["url"].(string); ok && finalSegment(single) == segment {
			return doc, nil
		}
	}
	return nil, ErrAliasNotFound
}

// Related fetches up to limit documents sharing a category term, excluding
// the current document. When the category filter yields nothing the call
// degrades to the most recent documents of the type.
func (c *Client) Related(ctx context.Context, contentType string, categoryID, excludeID int64, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 6
	}
	return c.relatedBy(ctx, contentType, "field_p_categories", categoryID, excludeID, limit)
}

func (c *Client) relatedBy(ctx context.Context, contentType, categoryField string, categoryID, excludeID int64, limit int) ([]Document, error) {
	filters := map[string]string{categoryField: strconv.FormatInt(categoryID, 10)}
	list, err := c.List(ctx, contentType, ListOptions{Limit: limit + 1, Filters: filters})
	if err != nil || len(list.Items) == 0 {
		c.log.Debug("related lookup degraded to recent content", "type", contentType, "category", categoryID)
		list, err = c.List(ctx, contentType, ListOptions{Limit: limit + 1, Sort: "created", Order: "desc"})
		if err != nil {
			return nil, err
		}
	}

	related := make([]Document, 0, limit)
	for _, doc := range list.Items {
		if doc.ID() == excludeID {
			continue
		}
		related = append(related, doc)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

// ID returns the document identifier, tolerating numeric and string forms.
func (d Document) ID() int64 {
	switch v := d["id"].(type) {
	case float64:
		return int64(v)
	case json.Number:
		parsed, _ := v.Int64()
		return parsed
	case string:
		parsed, _ := strconv.ParseInt(v, 10, 64)
		return parsed
	default:
		return 0
	}
}

// Title returns the document title when present.
func (d Document) Title() string {
	if title, ok := d["title"].(string); ok {
		return title
	}
	return ""
}

func decodeDocument(raw json.RawMessage) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("client: decode document: %w", err)
	}
	return doc, nil
}

func matchesLanguageCanonical(doc Document, lang, segment string) bool {
	urls, ok := doc["urls"].(map[string]any)
	if !ok {
		return false
	}
	set, ok := urls[lang].(map[string]any)
	if !ok {
		return false
	}
	canonical, ok := set["canonical"].(string)
	return ok && finalSegment(canonical) == segment
}

func documentMatchesSegment(doc Document, segment string) bool {
	urls, ok := doc["urls"].(map[string]any)
	if !ok {
		return false
	}
	for _, entry := range urls {
		set, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		canonical, ok := set["canonical"].(string)
		if !ok {
			continue
		}
		if finalSegment(canonical) == segment {
			return true
		}
	}
	return false
}

func finalSegment(path string) string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}
