package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/namsport/fixturedesk/internal/domain"
)

// fixtureRequest is the body of POST /fixtures, PUT /fixtures/{id} and
// POST /fixtures/check. Date and time are passed to the validator as typed,
// so an empty or malformed value gets the same structured rejection as any
// other rule.
type fixtureRequest struct {
	TeamA    string `json:"team_a"`
	TeamB    string `json:"team_b"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Venue    string `json:"venue"`
	Umpire   string `json:"umpire"`
	Official string `json:"official"`
}

type checkRequest struct {
	fixtureRequest
	EditingID *uuid.UUID `json:"editing_id,omitempty"`
}

type fixtureResponse struct {
	ID        uuid.UUID          `json:"id"`
	TeamA     string             `json:"team_a"`
	TeamB     string             `json:"team_b"`
	Date      openapi_types.Date `json:"date"`
	Time      string             `json:"time"`
	Venue     string             `json:"venue"`
	Umpire    string             `json:"umpire,omitempty"`
	Official  string             `json:"official,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type fixtureListResponse struct {
	Data       []fixtureResponse `json:"data"`
	Pagination pagination        `json:"pagination"`
}

type checkResponse struct {
	OK      bool            `json:"ok"`
	Fixture fixtureResponse `json:"fixture"`
}

const fixtureNotFound = "fixture not found"

// CreateFixture handles POST /fixtures.
func (s *Server) CreateFixture(w http.ResponseWriter, r *http.Request) {
	var req fixtureRequest
	if !decodeBody(w, r, &req) {
		return
	}
	proposal := requestToProposal(req)

	created, err := s.fixtures.Create(r.Context(), s.identify(r), proposal)
	if err != nil {
		s.writeError(w, r, err, fixtureNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, fixtureToResponse(created))
}

// UpdateFixture handles PUT /fixtures/{id}.
func (s *Server) UpdateFixture(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req fixtureRequest
	if !decodeBody(w, r, &req) {
		return
	}
	proposal := requestToProposal(req)

	updated, err := s.fixtures.Update(r.Context(), s.identify(r), id, proposal)
	if err != nil {
		s.writeError(w, r, err, fixtureNotFound)
		return
	}
	writeJSON(w, http.StatusOK, fixtureToResponse(updated))
}

// CheckFixture handles POST /fixtures/check.
// It validates without committing so a form can warn before confirmation.
func (s *Server) CheckFixture(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if !decodeBody(w, r, &req) {
		return
	}
	proposal := requestToProposal(req.fixtureRequest)

	prepared, err := s.fixtures.Check(r.Context(), proposal, req.EditingID)
	if err != nil {
		s.writeError(w, r, err, fixtureNotFound)
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{OK: true, Fixture: fixtureToResponse(prepared)})
}

// GetFixture handles GET /fixtures/{id}.
func (s *Server) GetFixture(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := s.fixtures.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, fixtureNotFound)
		return
	}
	writeJSON(w, http.StatusOK, fixtureToResponse(f))
}

// ListFixtures handles GET /fixtures.
// Supports ?q= (team or venue substring) plus ?page= and ?limit= (defaults:
// page=1, limit=20, max=100).
func (s *Server) ListFixtures(w http.ResponseWriter, r *http.Request) {
	query, params, err := listParams(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	fixtures, total, err := s.fixtures.ListPaged(r.Context(), query, params)
	if err != nil {
		s.writeError(w, r, err, fixtureNotFound)
		return
	}

	data := make([]fixtureResponse, len(fixtures))
	for i, f := range fixtures {
		data[i] = fixtureToResponse(f)
	}
	writeJSON(w, http.StatusOK, fixtureListResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

func requestToProposal(req fixtureRequest) domain.Proposal {
	return domain.Proposal{
		TeamA:    req.TeamA,
		TeamB:    req.TeamB,
		Date:     req.Date,
		Time:     req.Time,
		Venue:    req.Venue,
		Umpire:   req.Umpire,
		Official: req.Official,
	}
}

func fixtureToResponse(f domain.Fixture) fixtureResponse {
	return fixtureResponse{
		ID:        f.ID,
		TeamA:     f.TeamA,
		TeamB:     f.TeamB,
		Date:      openapi_types.Date{Time: f.Date},
		Time:      f.Time,
		Venue:     f.Venue,
		Umpire:    f.Umpire,
		Official:  f.Official,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
