package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, a team playing itself).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule
// enforced by the store, e.g. registering a team name that already exists.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrStoreUnavailable wraps any failure talking to the backing store that is
// not a NotFound. The caller cannot tell transient from permanent failures,
// so handlers map this to HTTP 503 with a "try again" message.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrUnauthorized is returned when a mutating operation is called without an
// authenticated identity. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller is authenticated but is not
// federation staff. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// RejectionReason names why a fixture proposal was refused.
type RejectionReason string

const (
	ReasonMissingRequiredField RejectionReason = "missing_required_field"
	ReasonSelfMatchup          RejectionReason = "self_matchup"
	ReasonInvalidField         RejectionReason = "invalid_field"
	ReasonDuplicateMatchup     RejectionReason = "duplicate_matchup"
	// ReasonUnknownTeam is only produced when the service is configured to
	// check proposals against the team directory.
	ReasonUnknownTeam RejectionReason = "unknown_team"
)

// RejectionError is the structured form of a refused fixture proposal.
// It unwraps to ErrValidation so callers that only care about "bad input"
// can keep using errors.Is.
type RejectionError struct {
	Reason RejectionReason

	// Fields lists the offending input fields (JSON names), if any.
	Fields []string

	// Pairing is the unordered pairing involved, set for SelfMatchup and
	// DuplicateMatchup.
	Pairing *Pairing

	// UnknownTeams lists team names missing from the directory. Only set for
	// UnknownTeam.
	UnknownTeams []string

	// ConflictingID is the id of the already-scheduled fixture that holds the
	// pairing. Only set for DuplicateMatchup.
	ConflictingID uuid.UUID
}

func (e *RejectionError) Error() string {
	switch e.Reason {
	case ReasonMissingRequiredField:
		return fmt.Sprintf("%s: missing required fields: %s", ErrValidation, strings.Join(e.Fields, ", "))
	case ReasonSelfMatchup:
		if e.Pairing != nil {
			return fmt.Sprintf("%s: a team cannot play itself (%s)", ErrValidation, e.Pairing.A)
		}
	case ReasonDuplicateMatchup:
		if e.Pairing != nil {
			return fmt.Sprintf("%s: a fixture between %s and %s already exists", ErrValidation, e.Pairing.A, e.Pairing.B)
		}
	case ReasonInvalidField:
		return fmt.Sprintf("%s: badly formatted fields: %s (date is YYYY-MM-DD, time is HH:MM)", ErrValidation, strings.Join(e.Fields, ", "))
	case ReasonUnknownTeam:
		return fmt.Sprintf("%s: not registered teams: %s", ErrValidation, strings.Join(e.UnknownTeams, ", "))
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Reason, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
}

// Message is the user-facing explanation, without the sentinel prefix.
func (e *RejectionError) Message() string {
	return strings.TrimPrefix(e.Error(), ErrValidation.Error()+": ")
}

func (e *RejectionError) Unwrap() error {
	return ErrValidation
}

// AsRejection reports whether err carries a RejectionError and returns it.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
