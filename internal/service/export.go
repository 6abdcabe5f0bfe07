package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/namsport/fixturedesk/internal/domain"
	"github.com/namsport/fixturedesk/internal/repo"
)

// ExportService assembles a flat export of every fixture joined with the
// team directory.
type ExportService struct {
	fixtures repo.FixtureRepo
	teams    repo.TeamRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(fixtures repo.FixtureRepo, teams repo.TeamRepo) *ExportService {
	return &ExportService{fixtures: fixtures, teams: teams}
}

// Export returns one ExportRow per fixture, ordered by match date then time.
// Teams missing from the directory contribute empty contact fields.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	fixtures, err := s.fixtures.List(ctx)
	if err != nil {
		return nil, storeErr("service.ExportService.Export: list fixtures", err)
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, storeErr("service.ExportService.Export: list teams", err)
	}

	byName := make(map[string]domain.Team, len(teams))
	for _, t := range teams {
		byName[t.Name] = t
	}

	sorted := slices.Clone(fixtures)
	slices.SortStableFunc(sorted, func(a, b domain.Fixture) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return compareKickoff(a.Time, b.Time)
	})

	rows := make([]domain.ExportRow, 0, len(sorted))
	for _, f := range sorted {
		a, aKnown := byName[f.TeamA]
		b, bKnown := byName[f.TeamB]
		rows = append(rows, domain.ExportRow{
			FixtureID:    f.ID.String(),
			Date:         f.Date.Format(domain.DateLayout),
			Time:         f.Time,
			Venue:        f.Venue,
			Umpire:       f.Umpire,
			Official:     f.Official,
			TeamA:        f.TeamA,
			TeamAContact: contactLine(a),
			TeamB:        f.TeamB,
			TeamBContact: contactLine(b),
			Premier:      aKnown && bKnown && a.PremierDivision && b.PremierDivision,
		})
	}
	return rows, nil
}

// compareKickoff orders two "15:04" times by clock value, so rows written
// before times were canonical ("7:05") still sort before "17:00". Unparsable
// values sort after parsable ones.
func compareKickoff(a, b string) int {
	ta, errA := time.Parse(domain.TimeLayout, a)
	tb, errB := time.Parse(domain.TimeLayout, b)
	switch {
	case errA == nil && errB == nil:
		return ta.Compare(tb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a, b)
}

// contactLine renders "Person (phone)". The zero Team yields "".
func contactLine(t domain.Team) string {
	switch {
	case t.ContactPerson == "" && t.ContactPhone == "":
		return ""
	case t.ContactPhone == "":
		return t.ContactPerson
	case t.ContactPerson == "":
		return t.ContactPhone
	}
	return fmt.Sprintf("%s (%s)", t.ContactPerson, t.ContactPhone)
}
