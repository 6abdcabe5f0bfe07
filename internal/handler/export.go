package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/namsport/fixturedesk/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"fixture_id", "date", "time", "venue", "umpire", "official",
	"team_a", "team_a_contact", "team_b", "team_b_contact", "premier",
}

type exportRow struct {
	FixtureID    uuid.UUID          `json:"fixture_id"`
	Date         openapi_types.Date `json:"date"`
	Time         string             `json:"time"`
	Venue        string             `json:"venue"`
	Umpire       *string            `json:"umpire,omitempty"`
	Official     *string            `json:"official,omitempty"`
	TeamA        string             `json:"team_a"`
	TeamAContact *string            `json:"team_a_contact,omitempty"`
	TeamB        string             `json:"team_b"`
	TeamBContact *string            `json:"team_b_contact,omitempty"`
	Premier      bool               `json:"premier"`
}

// GetExport handles GET /export.
// It returns a flat table of every fixture joined with the team directory.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		requestError(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err, "nothing to export")
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]exportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToJSON(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail.
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="fixtures.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToJSON maps a domain.ExportRow to its JSON form.
// Empty optional strings become nil pointers (omitted in JSON).
func domainRowToJSON(r domain.ExportRow) exportRow {
	id, _ := uuid.Parse(r.FixtureID)
	return exportRow{
		FixtureID:    id,
		Date:         mustParseDate(r.Date),
		Time:         r.Time,
		Venue:        r.Venue,
		Umpire:       optional(r.Umpire),
		Official:     optional(r.Official),
		TeamA:        r.TeamA,
		TeamAContact: optional(r.TeamAContact),
		TeamB:        r.TeamB,
		TeamBContact: optional(r.TeamBContact),
		Premier:      r.Premier,
	}
}

func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.FixtureID,
		r.Date,
		r.Time,
		r.Venue,
		r.Umpire,
		r.Official,
		r.TeamA,
		r.TeamAContact,
		r.TeamB,
		r.TeamBContact,
		strconv.FormatBool(r.Premier),
	}
}

// mustParseDate parses a "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
