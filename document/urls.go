package document

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-content-api/entity"
	urlkit "github.com/goliatone/go-urlkit"
)

const (
	routeNode = "node"
	routeEdit = "edit"
	routeTerm = "term"

	apiGroup     = "api"
	routeContent = "content"
)

// URLBuilder renders canonical, edit, and API URLs for entity translations
// plus public file and derivative-style URLs. One route group exists per
// configured language so non-default languages pick up their path prefix.
type URLBuilder struct {
	manager         *urlkit.RouteManager
	base            string
	defaultLanguage string
	filesPrefix     string
}

// NewURLBuilder constructs a builder for the given site base URL and
// language catalog.
func NewURLBuilder(base string, languages []string, defaultLanguage string) *URLBuilder {
	base = strings.TrimRight(strings.TrimSpace(base), "/")

	groups := make([]urlkit.GroupConfig, 0, len(languages)+1)
	for _, code := range languages {
		groups = append(groups, urlkit.GroupConfig{
			Name:    code,
			BaseURL: base + languagePrefix(code, defaultLanguage),
			Paths: map[string]string{
				routeNode: "/node/:id",
				routeEdit: "/node/:id/edit",
				routeTerm: "/taxonomy/term/:id",
			},
		})
	}
	groups = append(groups, urlkit.GroupConfig{
		Name:    apiGroup,
		BaseURL: base,
		Paths: map[string]string{
			routeContent: "/api/content/:type/:id",
		},
	})

	return &URLBuilder{
		manager:         urlkit.NewRouteManager(&urlkit.Config{Groups: groups}),
		base:            base,
		defaultLanguage: defaultLanguage,
		filesPrefix:     "/sites/default/files",
	}
}

func languagePrefix(code, defaultLanguage string) string {
	if code == defaultLanguage {
		return ""
	}
	return "/" + code
}

// Canonical returns the public URL for one translation, preferring the
// registered path alias over the internal /node/:id route.
func (b *URLBuilder) Canonical(e *entity.Entity, language string) string {
	if alias, ok := e.Aliases[language]; ok && alias != "" {
		return b.base + languagePrefix(language, b.defaultLanguage) + alias
	}
	route := routeNode
	if e.Kind == entity.KindTerm {
		route = routeTerm
	}
	return b.build(language, route, map[string]any{"id": e.ID}, nil)
}

// Edit returns the backend edit-form URL for one translation.
func (b *URLBuilder) Edit(e *entity.Entity, language string) string {
	return b.build(language, routeEdit, map[string]any{"id": e.ID}, nil)
}

// API returns the single-content API URL. The language is always carried as
// a query parameter, never as a path prefix.
func (b *URLBuilder) API(bundle string, id int64, language string) string {
	return b.build(apiGroup, routeContent, map[string]any{"type": bundle, "id": id}, map[string]string{"lang": language})
}

// FileURL maps a stored file URI (public://...) onto a public URL.
func (b *URLBuilder) FileURL(uri string) string {
	return b.base + b.filesPrefix + "/" + strings.TrimPrefix(relativeFilePath(uri), "/")
}

// StyledURL returns the derivative URL for one registered image style.
func (b *URLBuilder) StyledURL(style, uri string) string {
	return fmt.Sprintf("%s%s/styles/%s/public/%s", b.base, b.filesPrefix, style, strings.TrimPrefix(relativeFilePath(uri), "/"))
}

func relativeFilePath(uri string) string {
	if idx := strings.Index(uri, "://"); idx >= 0 {
		return uri[idx+3:]
	}
	return uri
}

func (b *URLBuilder) build(group, route string, params map[string]any, query map[string]string) string {
	grp := b.lookupGroup(group)
	if grp == nil {
		return ""
	}
	builder := grp.Builder(route)
	for key, val := range params {
		builder.WithParam(key, val)
	}
	for key, val := range query {
		builder.WithQuery(key, val)
	}
	url, err := builder.Build()
	if err != nil {
		return ""
	}
	return url
}

// lookupGroup shields callers from the route manager's panic on unknown
// group names; unknown languages simply produce no URL.
func (b *URLBuilder) lookupGroup(name string) (group *urlkit.Group) {
	defer func() {
		if recover() != nil {
			group = nil
		}
	}()
	return b.manager.Group(name)
}
