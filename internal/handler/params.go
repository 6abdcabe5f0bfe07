package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/namsport/fixturedesk/internal/domain"
)

// pagination is the envelope metadata of a paged list response.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// listParams reads ?q=, ?page= and ?limit=.
func listParams(r *http.Request) (string, domain.PaginationParams, error) {
	q := r.URL.Query()
	page, err := optionalInt(q.Get("page"), "page")
	if err != nil {
		return "", domain.PaginationParams{}, err
	}
	limit, err := optionalInt(q.Get("limit"), "limit")
	if err != nil {
		return "", domain.PaginationParams{}, err
	}
	return q.Get("q"), domain.NewPaginationParams(page, limit), nil
}

func optionalInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errors.New("id must be a UUID")
	}
	return id, nil
}

// decodeBody decodes a JSON request body into v and writes the error
// response itself when that fails. It reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		requestError(w, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeErrorBody(w, http.StatusRequestEntityTooLarge, errorDetail{Code: "body_too_large", Message: "request body too large"})
		case strings.Contains(err.Error(), "EOF"):
			requestError(w, http.StatusBadRequest, "request body is required")
		default:
			requestError(w, http.StatusBadRequest, "request body is not valid JSON")
		}
		return false
	}
	return true
}
