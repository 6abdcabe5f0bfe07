// Package fixture decides whether a proposed fixture may be committed.
//
// ValidateAndPrepare is pure: it is handed a fresh snapshot of every stored
// fixture and recomputes the pairing check from scratch on each call. Fetching
// the snapshot and committing the result are the caller's job.
package fixture

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/namsport/fixturedesk/internal/domain"
)

// ValidateAndPrepare checks proposal against the field rules and against the
// pairings already present in existing, and returns the fixture to commit.
//
// editingID is nil for a creation. For an edit it names the stored fixture
// being replaced; that fixture is exempt from the duplicate check and its
// ID and CreatedAt are carried onto the result. now is stamped as CreatedAt
// on creations.
//
// Checks run in order and stop at the first failure:
//  1. team_a, team_b, date, time and venue are present (ReasonMissingRequiredField)
//  2. the two teams differ (ReasonSelfMatchup)
//  3. date is YYYY-MM-DD and time is HH:MM (ReasonInvalidField)
//  4. no other fixture has the same unordered pairing (ReasonDuplicateMatchup)
//
// The accepted time is rewritten in canonical form, so "7:05" is stored as
// "07:05".
func ValidateAndPrepare(proposal domain.Proposal, existing []domain.Fixture, editingID *uuid.UUID, now time.Time) (domain.Fixture, error) {
	p := normalize(proposal)

	if missing := missingFields(p); len(missing) > 0 {
		return domain.Fixture{}, &domain.RejectionError{
			Reason: domain.ReasonMissingRequiredField,
			Fields: missing,
		}
	}

	pairing := domain.NewPairing(p.TeamA, p.TeamB)
	if p.TeamA == p.TeamB {
		return domain.Fixture{}, &domain.RejectionError{
			Reason:  domain.ReasonSelfMatchup,
			Fields:  []string{"team_a", "team_b"},
			Pairing: &pairing,
		}
	}

	f, err := parse(p)
	if err != nil {
		return domain.Fixture{}, err
	}

	var original *domain.Fixture
	for i := range existing {
		other := existing[i]
		if editingID != nil && other.ID == *editingID {
			original = &existing[i]
			continue
		}
		if domain.NewPairing(strings.TrimSpace(other.TeamA), strings.TrimSpace(other.TeamB)) == pairing {
			return domain.Fixture{}, &domain.RejectionError{
				Reason:        domain.ReasonDuplicateMatchup,
				Fields:        []string{"team_a", "team_b"},
				Pairing:       &pairing,
				ConflictingID: other.ID,
			}
		}
	}

	if editingID == nil {
		f.CreatedAt = now
		return f, nil
	}

	if original == nil {
		return domain.Fixture{}, fmt.Errorf("fixture %s: %w", *editingID, domain.ErrNotFound)
	}
	f.ID = original.ID
	f.CreatedAt = original.CreatedAt
	f.UpdatedAt = original.UpdatedAt
	return f, nil
}

// parse converts the form text into a Fixture with no identity. Both date
// and time are checked before reporting, so one rejection names every
// badly formatted field.
func parse(p domain.Proposal) (domain.Fixture, error) {
	var invalid []string

	date, err := time.Parse(domain.DateLayout, p.Date)
	if err != nil {
		invalid = append(invalid, "date")
	}
	kickoff, err := time.Parse(domain.TimeLayout, p.Time)
	if err != nil {
		invalid = append(invalid, "time")
	}
	if len(invalid) > 0 {
		return domain.Fixture{}, &domain.RejectionError{
			Reason: domain.ReasonInvalidField,
			Fields: invalid,
		}
	}

	return domain.Fixture{
		TeamA:    p.TeamA,
		TeamB:    p.TeamB,
		Date:     date,
		Time:     kickoff.Format(domain.TimeLayout),
		Venue:    p.Venue,
		Umpire:   p.Umpire,
		Official: p.Official,
	}, nil
}

// missingFields lists, in form order, the required fields that are empty.
func missingFields(p domain.Proposal) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"team_a", p.TeamA},
		{"team_b", p.TeamB},
		{"date", p.Date},
		{"time", p.Time},
		{"venue", p.Venue},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// normalize trims surrounding whitespace from every field so that
// "Saints " and "Saints" name the same team.
func normalize(p domain.Proposal) domain.Proposal {
	p.TeamA = strings.TrimSpace(p.TeamA)
	p.TeamB = strings.TrimSpace(p.TeamB)
	p.Date = strings.TrimSpace(p.Date)
	p.Time = strings.TrimSpace(p.Time)
	p.Venue = strings.TrimSpace(p.Venue)
	p.Umpire = strings.TrimSpace(p.Umpire)
	p.Official = strings.TrimSpace(p.Official)
	return p
}
