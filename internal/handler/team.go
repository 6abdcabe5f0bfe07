package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/namsport/fixturedesk/internal/domain"
)

type teamRequest struct {
	Name            string `json:"name"`
	ContactPerson   string `json:"contact_person"`
	ContactPhone    string `json:"contact_phone"`
	ContactEmail    string `json:"contact_email"`
	UmpireName      string `json:"umpire_name"`
	UmpirePhone     string `json:"umpire_phone"`
	PremierDivision bool   `json:"premier_division"`
	// AcceptedTerms is only consulted on registration.
	AcceptedTerms bool `json:"accepted_terms"`
}

type teamResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ContactPerson   string    `json:"contact_person"`
	ContactPhone    string    `json:"contact_phone"`
	ContactEmail    string    `json:"contact_email"`
	UmpireName      string    `json:"umpire_name"`
	UmpirePhone     string    `json:"umpire_phone"`
	PremierDivision bool      `json:"premier_division"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type teamListResponse struct {
	Data       []teamResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type teamNamesResponse struct {
	Names []string `json:"names"`
}

const teamNotFound = "team not found"

// RegisterTeam handles POST /teams.
func (s *Server) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.teams.Register(r.Context(), s.identify(r), requestToTeam(uuid.Nil, req), req.AcceptedTerms)
	if err != nil {
		s.writeError(w, r, err, teamNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, teamToResponse(created))
}

// UpdateTeam handles PUT /teams/{id}.
func (s *Server) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req teamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.teams.Update(r.Context(), s.identify(r), requestToTeam(id, req))
	if err != nil {
		s.writeError(w, r, err, teamNotFound)
		return
	}
	writeJSON(w, http.StatusOK, teamToResponse(updated))
}

// GetTeam handles GET /teams/{id}.
func (s *Server) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := s.teams.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, teamNotFound)
		return
	}
	writeJSON(w, http.StatusOK, teamToResponse(t))
}

// ListTeams handles GET /teams?q=&page=&limit=.
func (s *Server) ListTeams(w http.ResponseWriter, r *http.Request) {
	query, params, err := listParams(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	teams, total, err := s.teams.ListPaged(r.Context(), query, params)
	if err != nil {
		s.writeError(w, r, err, teamNotFound)
		return
	}

	data := make([]teamResponse, len(teams))
	for i, t := range teams {
		data[i] = teamToResponse(t)
	}
	writeJSON(w, http.StatusOK, teamListResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// ListTeamNames handles GET /teams/names, the list a fixture form offers
// for team A and team B.
func (s *Server) ListTeamNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.teams.ListNames(r.Context())
	if err != nil {
		s.writeError(w, r, err, teamNotFound)
		return
	}
	writeJSON(w, http.StatusOK, teamNamesResponse{Names: names})
}

func requestToTeam(id uuid.UUID, req teamRequest) domain.Team {
	return domain.Team{
		ID:              id,
		Name:            req.Name,
		ContactPerson:   req.ContactPerson,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		UmpireName:      req.UmpireName,
		UmpirePhone:     req.UmpirePhone,
		PremierDivision: req.PremierDivision,
	}
}

func teamToResponse(t domain.Team) teamResponse {
	return teamResponse{
		ID:              t.ID,
		Name:            t.Name,
		ContactPerson:   t.ContactPerson,
		ContactPhone:    t.ContactPhone,
		ContactEmail:    t.ContactEmail,
		UmpireName:      t.UmpireName,
		UmpirePhone:     t.UmpirePhone,
		PremierDivision: t.PremierDivision,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
