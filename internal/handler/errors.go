package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/namsport/fixturedesk/internal/domain"
)

// errorResponse is the envelope of every non-2xx JSON response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code          string         `json:"code"`
	Message       string         `json:"message"`
	Fields        []string       `json:"fields,omitempty"`
	Pairing       *pairingDetail `json:"pairing,omitempty"`
	UnknownTeams  []string       `json:"unknown_teams,omitempty"`
	ConflictingID *uuid.UUID     `json:"conflicting_id,omitempty"`
}

type pairingDetail struct {
	TeamA string `json:"team_a"`
	TeamB string `json:"team_b"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, d errorDetail) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, status, errorResponse{Error: d})
}

// requestError rejects a request before it reaches the service layer
// (e.g. malformed body or query parameter).
func requestError(w http.ResponseWriter, status int, message string) {
	code := "bad_request"
	if status == http.StatusUnprocessableEntity {
		code = "validation_error"
	}
	writeErrorBody(w, status, errorDetail{Code: code, Message: message})
}

// writeError maps a service error to a status code and error body.
// notFound is the message used for domain.ErrNotFound, because the handler
// is the layer that knows what was being looked up.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	if rej, ok := domain.AsRejection(err); ok {
		writeErrorBody(w, rejectionStatus(rej.Reason), rejectionDetail(rej))
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, errorDetail{Code: "validation_error", Message: unwrapMessage(err)})
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, errorDetail{Code: "not_found", Message: notFound})
	case errors.Is(err, domain.ErrConflict):
		writeErrorBody(w, http.StatusConflict, errorDetail{Code: "conflict", Message: "a record with that name already exists"})
	case errors.Is(err, domain.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", `Bearer realm="fixturedesk"`)
		writeErrorBody(w, http.StatusUnauthorized, errorDetail{Code: "unauthorized", Message: "sign in as federation staff to make changes"})
	case errors.Is(err, domain.ErrForbidden):
		writeErrorBody(w, http.StatusForbidden, errorDetail{Code: "forbidden", Message: "only federation staff can make changes"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		s.logger.WarnContext(r.Context(), "store unavailable", "path", r.URL.Path, "error", err)
		w.Header().Set("Retry-After", "5")
		writeErrorBody(w, http.StatusServiceUnavailable, errorDetail{Code: "store_unavailable", Message: "the fixture store could not be reached, please try again"})
	default:
		s.logger.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeErrorBody(w, http.StatusInternalServerError, errorDetail{Code: "internal_error", Message: "internal server error"})
	}
}

// rejectionStatus: a taken pairing is a conflict with existing state, every
// other rejection is bad input.
func rejectionStatus(reason domain.RejectionReason) int {
	if reason == domain.ReasonDuplicateMatchup {
		return http.StatusConflict
	}
	return http.StatusUnprocessableEntity
}

func rejectionDetail(rej *domain.RejectionError) errorDetail {
	d := errorDetail{
		Code:         string(rej.Reason),
		Message:      rej.Message(),
		Fields:       rej.Fields,
		UnknownTeams: rej.UnknownTeams,
	}
	if rej.Pairing != nil {
		d.Pairing = &pairingDetail{TeamA: rej.Pairing.A, TeamB: rej.Pairing.B}
	}
	if rej.ConflictingID != uuid.Nil {
		id := rej.ConflictingID
		d.ConflictingID = &id
	}
	return d
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.TeamService.Register: validation error: contact_email is not a valid email address"
// → "contact_email is not a valid email address"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
