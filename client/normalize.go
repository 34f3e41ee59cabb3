package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// APIError is a failed response surfaced by the server envelope or, for
// non-JSON failures, by the HTTP status alone.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: api error %d", e.Code)
	}
	return fmt.Sprintf("client: api error %d: %s", e.Code, e.Message)
}

func isNotFound(err error, target **APIError) bool {
	if errors.As(err, target) {
		return (*target).Code == http.StatusNotFound
	}
	return false
}

// IsTimeout reports whether a request failed because the per-request timeout
// or a context deadline elapsed, as opposed to the server rejecting it.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

type wireEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *wireError      `json:"error"`
}

type wireError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// unwrapEnvelope extracts the data payload from a response. Bodies without
// the success envelope pass through whole, which keeps older deployments of
// the API readable.
func unwrapEnvelope(status int, body []byte) (json.RawMessage, error) {
	var env wireEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		if status >= http.StatusBadRequest {
			return nil, &APIError{Code: status, Message: http.StatusText(status)}
		}
		// Top-level arrays predate the envelope entirely.
		if json.Valid(body) {
			return json.RawMessage(body), nil
		}
		return nil, fmt.Errorf("client: malformed response: %w", err)
	}

	if env.Error != nil {
		code := env.Error.Code
		if code == 0 {
			code = status
		}
		return nil, &APIError{Code: code, Message: env.Error.Message}
	}
	if env.Success != nil && !*env.Success {
		return nil, &APIError{Code: status, Message: "request failed"}
	}
	if status >= http.StatusBadRequest {
		return nil, &APIError{Code: status, Message: http.StatusText(status)}
	}

	if env.Success == nil && env.Data == nil {
		return json.RawMessage(body), nil
	}
	if env.Data == nil {
		return json.RawMessage("null"), nil
	}
	return env.Data, nil
}

// Document is one loosely typed content payload.
type Document map[string]any

// ListResult is a normalized listing window. Pages is the total page count
// for the effective window size.
type ListResult struct {
	Items            []Document
	Total            int
	Limit            int
	Offset           int
	Pages            int
	HasNext          bool
	HasPrevious      bool
	ReturnedLanguage string
}

type listPayload struct {
	Items            []Document `json:"items"`
	Rows             []Document `json:"rows"`
	Total            int        `json:"total"`
	Limit            int        `json:"limit"`
	Offset           int        `json:"offset"`
	HasNext          *bool      `json:"has_next"`
	HasPrevious      *bool      `json:"has_previous"`
	ReturnedLanguage string     `json:"returned_language"`
}

// normalizeList accepts the three historical list payload shapes: the
// current {items, total, ...} object, the older {rows, ...} object, and the
// oldest bare JSON array. Pagination flags come from the payload when the
// server sends them and are derived from the window otherwise.
func normalizeList(raw json.RawMessage) (*ListResult, error) {
	var bare []Document
	if err := json.Unmarshal(raw, &bare); err == nil {
		result := &ListResult{Items: bare, Total: len(bare), Limit: len(bare)}
		if result.Total > 0 {
			result.Pages = 1
		}
		return result, nil
	}

	var payload listPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("client: unexpected list payload: %w", err)
	}

	items := payload.Items
	if items == nil {
		items = payload.Rows
	}
	if items == nil {
		items = []Document{}
	}

	total := payload.Total
	if total == 0 && len(items) > 0 {
		total = len(items)
	}

	limit := payload.Limit
	if limit <= 0 {
		limit = len(items)
	}

	result := &ListResult{
		Items:            items,
		Total:            total,
		Limit:            payload.Limit,
		Offset:           payload.Offset,
		ReturnedLanguage: payload.ReturnedLanguage,
	}
	if limit > 0 {
		result.Pages = (total + limit - 1) / limit
		result.HasNext = payload.Offset+limit < total
	}
	result.HasPrevious = payload.Offset > 0
	if payload.HasNext != nil {
		result.HasNext = *payload.HasNext
	}
	if payload.HasPrevious != nil {
		result.HasPrevious = *payload.HasPrevious
	}
	return result, nil
}
