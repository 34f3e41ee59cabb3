package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/listing"
)

type envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     *apiError `json:"error,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (api *API) writeData(w http.ResponseWriter, status int, data any) {
	api.writeJSON(w, status, envelope{
		Success:   true,
		Data:      data,
		Timestamp: api.now().Unix(),
	})
}

func (api *API) writeError(w http.ResponseWriter, err error) {
	status, message := mapError(err)
	api.log.Debug("request failed", "status", status, "error", err)
	api.writeJSON(w, status, envelope{
		Success:   false,
		Error:     &apiError{Message: message, Code: status},
		Timestamp: api.now().Unix(),
	})
}

func (api *API) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type invalidIDError struct {
	raw string
}

func (e *invalidIDError) Error() string {
	return "invalid content id " + strconv.Quote(e.raw)
}

func mapError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "unknown error"
	}

	var badID *invalidIDError
	if errors.As(err, &badID) {
		return http.StatusBadRequest, badID.Error()
	}

	switch {
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, document.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, entity.ErrUnknownBundle), errors.Is(err, entity.ErrUnknownVocabulary):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, document.ErrInvalidPath),
		errors.Is(err, entity.ErrUnknownSortField),
		errors.Is(err, listing.ErrEmptyQuery):
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, err.Error()
}
