// Package domain contains the core data types for the Fixture Desk service.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (fixture, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of a fixture date.
const DateLayout = "2006-01-02"

// TimeLayout is the wire and storage format of a fixture kick-off time.
const TimeLayout = "15:04"

// Fixture is a single scheduled match between two named teams.
// ID is uuid.Nil until the store has persisted the fixture.
type Fixture struct {
	ID        uuid.UUID
	TeamA     string
	TeamB     string
	Date      time.Time // calendar date, time-of-day ignored
	Time      string    // "15:04"
	Venue     string
	Umpire    string
	Official  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Proposal is a fixture as entered on the form, before validation. Date and
// Time hold the text the user typed; the validator parses them.
type Proposal struct {
	TeamA    string
	TeamB    string
	Date     string // "2006-01-02"
	Time     string // "15:04"
	Venue    string
	Umpire   string
	Official string
}

// ProposalFrom renders a stored fixture back into form text.
func ProposalFrom(f Fixture) Proposal {
	p := Proposal{
		TeamA:    f.TeamA,
		TeamB:    f.TeamB,
		Time:     f.Time,
		Venue:    f.Venue,
		Umpire:   f.Umpire,
		Official: f.Official,
	}
	if !f.Date.IsZero() {
		p.Date = f.Date.Format(DateLayout)
	}
	return p
}

// Pairing returns the unordered pairing of the fixture's two teams.
func (f Fixture) Pairing() Pairing {
	return NewPairing(f.TeamA, f.TeamB)
}

// Pairing is the set {A, B} of two team names, stored in sorted order so that
// two pairings of the same teams compare equal regardless of who was "team A".
type Pairing struct {
	A string
	B string
}

// NewPairing builds the order-independent pairing of two team names.
func NewPairing(teamA, teamB string) Pairing {
	if teamB < teamA {
		teamA, teamB = teamB, teamA
	}
	return Pairing{A: teamA, B: teamB}
}

// Key is a stable string form of the pairing, usable as a map key.
func (p Pairing) Key() string {
	return p.A + "\x00" + p.B
}
