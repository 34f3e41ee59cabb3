package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-content-api/client"
)

func envelopeBody(data any) string {
	payload, _ := json.Marshal(map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": 1700000000,
	})
	return string(payload)
}

func errorBody(code int, message string) string {
	payload, _ := json.Marshal(map[string]any{
		"success":   false,
		"error":     map[string]any{"message": message, "code": code},
		"timestamp": 1700000000,
	})
	return string(payload)
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := client.New("   "); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/content/article/1" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, envelopeBody(map[string]any{"id": 1, "title": "First Post"}))
	}))
	defer server.Close()

	c, err := client.New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	doc, err := c.Get(context.Background(), "article", 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.ID() != 1 || doc.Title() != "First Post" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestGetCachesResponses(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, envelopeBody(map[string]any{"id": 1, "title": "First Post"}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	for range 3 {
		if _, err := c.Get(context.Background(), "article", 1); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single upstream request, got %d", hits.Load())
	}
}

func TestSetLanguageFlushesCaches(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, envelopeBody(map[string]any{"id": 1, "title": "First Post"}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	if _, err := c.Get(context.Background(), "article", 1); err != nil {
		t.Fatalf("get: %v", err)
	}
	c.SetLanguage("zh")
	if _, err := c.Get(context.Background(), "article", 1); err != nil {
		t.Fatalf("get: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected refetch after language switch, got %d requests", hits.Load())
	}
}

func TestGetRetriesDefaultLanguageOn404(t *testing.T) {
	var langs []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")
		langs = append(langs, lang)
		if lang != "en" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, errorBody(http.StatusNotFound, "not found"))
			return
		}
		fmt.Fprint(w, envelopeBody(map[string]any{"id": 1, "title": "English Fallback"}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL, client.WithLanguage("zh"))

	doc, err := c.Get(context.Background(), "article", 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Title() != "English Fallback" {
		t.Fatalf("expected fallback document, got %+v", doc)
	}
	if len(langs) != 2 || langs[0] != "zh" || langs[1] != "en" {
		t.Fatalf("expected zh then en requests, got %v", langs)
	}
}

func TestTimeoutDistinguishable(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	c, _ := client.New(server.URL, client.WithTimeout(50*time.Millisecond))

	_, err := c.Get(context.Background(), "article", 1)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !client.IsTimeout(err) {
		t.Fatalf("expected timeout kind, got %v", err)
	}
}

func TestGetSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, errorBody(http.StatusNotFound, "no such article"))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	_, err := c.Get(context.Background(), "article", 404)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError got %v", err)
	}
	if apiErr.Code != http.StatusNotFound || apiErr.Message != "no such article" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestListNormalizesCurrentShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelopeBody(map[string]any{
			"items":             []map[string]any{{"id": 1}, {"id": 2}},
			"total":             9,
			"limit":             2,
			"offset":            0,
			"returned_language": "en",
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	list, err := c.List(context.Background(), "article", client.ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 9 || len(list.Items) != 2 || list.ReturnedLanguage != "en" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestListDerivesPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Older deployments send no pagination flags; the client derives
		// them from the window.
		fmt.Fprint(w, envelopeBody(map[string]any{
			"items":  []map[string]any{{"id": 5}, {"id": 6}},
			"total":  9,
			"limit":  2,
			"offset": 4,
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	list, err := c.List(context.Background(), "article", client.ListOptions{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Pages != 5 {
		t.Fatalf("expected 5 pages for 9/2, got %d", list.Pages)
	}
	if !list.HasNext || !list.HasPrevious {
		t.Fatalf("expected middle window flags, got %+v", list)
	}
}

func TestListHonorsServerPaginationFlags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Flags that disagree with the window prove the server values win
		// over client-side derivation.
		fmt.Fprint(w, envelopeBody(map[string]any{
			"items":        []map[string]any{{"id": 9}},
			"total":        3,
			"limit":        1,
			"offset":       0,
			"has_next":     false,
			"has_previous": true,
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	list, err := c.List(context.Background(), "article", client.ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.HasNext || !list.HasPrevious {
		t.Fatalf("expected server flags to win, got %+v", list)
	}
	if list.Pages != 3 {
		t.Fatalf("expected 3 pages for 3/1, got %d", list.Pages)
	}
}

func TestListNormalizesRowsShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelopeBody(map[string]any{
			"rows": []map[string]any{{"id": 3}},
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	list, err := c.List(context.Background(), "article", client.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ID() != 3 {
		t.Fatalf("expected rows fallback, got %+v", list)
	}
	if list.Total != 1 {
		t.Fatalf("expected total derived from rows, got %d", list.Total)
	}
}

func TestListNormalizesBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The oldest deployments returned the array with no envelope at all.
		fmt.Fprint(w, `[{"id": 4}, {"id": 5}]`)
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	list, err := c.List(context.Background(), "article", client.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 2 || list.Total != 2 {
		t.Fatalf("expected bare array normalization, got %+v", list)
	}
}

func TestGetByAlias(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelopeBody(map[string]any{
			"items": []map[string]any{
				{
					"id": 1,
					"urls": map[string]any{
						"en": map[string]any{"canonical": "https://example.com/products/blue-chair"},
					},
				},
				{
					"id": 2,
					"urls": map[string]any{
						"en": map[string]any{"canonical": "https://example.com/products/red-sofa"},
					},
				},
			},
			"total": 2,
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	doc, err := c.GetByAlias(context.Background(), "product", "/products/red-sofa")
	if err != nil {
		t.Fatalf("get by alias: %v", err)
	}
	if doc.ID() != 2 {
		t.Fatalf("expected alias match on 2, got %+v", doc)
	}

	if _, err := c.GetByAlias(context.Background(), "product", "/products/green-table"); !errors.Is(err, client.ErrAliasNotFound) {
		t.Fatalf("expected ErrAliasNotFound got %v", err)
	}
}

func TestGetByAliasPrefersActiveLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Both documents end in the same segment, in different languages.
		fmt.Fprint(w, envelopeBody(map[string]any{
			"items": []map[string]any{
				{
					"id": 1,
					"urls": map[string]any{
						"en": map[string]any{"canonical": "https://example.com/products/shared-slug"},
					},
				},
				{
					"id": 2,
					"urls": map[string]any{
						"zh": map[string]any{"canonical": "https://example.com/zh/products/shared-slug"},
					},
				},
			},
			"total": 2,
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL, client.WithLanguage("zh"))

	doc, err := c.GetByAlias(context.Background(), "product", "/products/shared-slug")
	if err != nil {
		t.Fatalf("get by alias: %v", err)
	}
	if doc.ID() != 2 {
		t.Fatalf("expected active-language canonical to win, got %d", doc.ID())
	}
}

func TestGetByAliasFallsBackToURLField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelopeBody(map[string]any{
			"items": []map[string]any{
				{"id": 7, "url": "https://example.com/products/only-url"},
			},
			"total": 1,
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	doc, err := c.GetByAlias(context.Background(), "product", "/products/only-url")
	if err != nil {
		t.Fatalf("get by alias: %v", err)
	}
	if doc.ID() != 7 {
		t.Fatalf("expected url-field fallback match, got %d", doc.ID())
	}
}

func TestRelatedDegradesToRecent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("field_p_categories") != "" {
			fmt.Fprint(w, envelopeBody(map[string]any{"items": []map[string]any{}, "total": 0}))
			return
		}
		fmt.Fprint(w, envelopeBody(map[string]any{
			"items": []map[string]any{{"id": 1}, {"id": 2}, {"id": 3}},
			"total": 3,
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	related, err := c.Related(context.Background(), "product", 70, 1, 2)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("expected limit respected, got %d", len(related))
	}
	for _, doc := range related {
		if doc.ID() == 1 {
			t.Fatal("related must exclude the current document")
		}
	}
}

func TestSearchDecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "camp" {
			t.Fatalf("expected q=camp got %q", got)
		}
		if got := r.URL.Query().Get("type"); got != "article" {
			t.Fatalf("expected type=article got %q", got)
		}
		fmt.Fprint(w, envelopeBody(map[string]any{
			"query": "camp",
			"type":  "article",
			"items": []map[string]any{{"id": 2, "title": "Base Camp"}},
			"total": 1,
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	result, err := c.Search(context.Background(), "camp", client.SearchOptions{Type: "article"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 1 || result.Items[0].Title() != "Base Camp" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Type != "article" {
		t.Fatalf("expected type echoed, got %q", result.Type)
	}
}

func TestLanguagesDecodesCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelopeBody(map[string]any{
			"languages": []map[string]any{
				{"langcode": "en", "name": "English"},
				{"langcode": "zh", "name": "Chinese"},
			},
			"default_language": "en",
		}))
	}))
	defer server.Close()

	c, _ := client.New(server.URL)

	info, err := c.Languages(context.Background())
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if len(info.Languages) != 2 || info.Default != "en" {
		t.Fatalf("unexpected catalog %+v", info)
	}
	if info.Languages[1].Code != "zh" {
		t.Fatalf("unexpected language %+v", info.Languages[1])
	}
}

func TestLanguageAccessor(t *testing.T) {
	c, _ := client.New("https://example.com/api", client.WithDefaultLanguage("en"))
	if c.Language() != "en" {
		t.Fatalf("expected default language, got %q", c.Language())
	}
	c.SetLanguage("zh")
	if c.Language() != "zh" {
		t.Fatalf("expected active language, got %q", c.Language())
	}
}
