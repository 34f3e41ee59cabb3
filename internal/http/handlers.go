package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-content-api/internal/listing"
)

func (api *API) handlePage(w http.ResponseWriter, r *http.Request) {
	path := "/" + strings.Trim(r.PathValue("path"), "/")
	lang := r.URL.Query().Get("lang")

	doc, err := api.docs.ByPath(r.Context(), path, lang, lang)
	if err != nil {
		api.writeError(w, err)
		return
	}
	api.writeData(w, http.StatusOK, doc)
}

func (api *API) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := listing.ListRequest{
		Bundle:   r.PathValue("type"),
		Language: query.Get("lang"),
		Limit:    intQuery(query.Get("limit")),
		Offset:   intQuery(query.Get("offset")),
		Sort:     query.Get("sort"),
		Order:    query.Get("order"),
		Filters:  map[string]string{},
	}
	for name := range query {
		req.Filters[name] = query.Get(name)
	}

	page, err := api.listings.List(r.Context(), req)
	if err != nil {
		api.writeError(w, err)
		return
	}
	api.writeData(w, http.StatusOK, page)
}

func (api *API) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		api.writeError(w, &invalidIDError{raw: r.PathValue("id")})
		return
	}

	doc, err := api.listings.Get(r.Context(), listing.GetRequest{
		Bundle:   r.PathValue("type"),
		ID:       id,
		Language: r.URL.Query().Get("lang"),
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	api.writeData(w, http.StatusOK, doc)
}

func (api *API) handleLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := api.store.Languages(r.Context())
	if err != nil {
		api.writeError(w, err)
		return
	}
	defaultLanguage, err := api.store.DefaultLanguage(r.Context())
	if err != nil {
		api.writeError(w, err)
		return
	}
	api.writeData(w, http.StatusOK, map[string]any{
		"languages":        languages,
		"default_language": defaultLanguage,
	})
}

func (api *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := api.listings.Search(r.Context(), listing.SearchRequest{
		Query:    query.Get("q"),
		Type:     query.Get("type"),
		Language: query.Get("lang"),
		Limit:    intQuery(query.Get("limit")),
		Offset:   intQuery(query.Get("offset")),
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	api.writeData(w, http.StatusOK, result)
}

func (api *API) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := api.listings.Stats(r.Context())
	if err != nil {
		api.writeError(w, err)
		return
	}
	api.writeData(w, http.StatusOK, stats)
}

func (api *API) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := api.listings.Terms(r.Context(), listing.TermsRequest{
		Vocabulary: r.PathValue("vocabulary"),
		Language:   query.Get("lang"),
		Limit:      intQuery(query.Get("limit")),
		Offset:     intQuery(query.Get("offset")),
		Sort:       query.Get("sort"),
		Order:      query.Get("order"),
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	api.writeData(w, http.StatusOK, page)
}

func intQuery(value string) int {
	parsed, _ := strconv.Atoi(strings.TrimSpace(value))
	return parsed
}
