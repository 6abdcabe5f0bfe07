// Package broadcast delivers committed fixture changes to listeners: a NATS
// subject for other services and a websocket feed for live clients.
package broadcast

import (
	"context"
	"errors"
	"time"

	"github.com/namsport/fixturedesk/internal/domain"
)

// EventType names the kind of change.
type EventType string

const (
	FixtureCreated EventType = "fixture.created"
	FixtureUpdated EventType = "fixture.updated"
)

// Event is a single committed fixture change.
type Event struct {
	Type    EventType      `json:"type"`
	Fixture FixturePayload `json:"fixture"`
	Actor   string         `json:"actor,omitempty"`
	At      time.Time      `json:"at"`
}

// FixturePayload is the wire form of a fixture inside an Event.
type FixturePayload struct {
	ID        string    `json:"id"`
	TeamA     string    `json:"team_a"`
	TeamB     string    `json:"team_b"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Venue     string    `json:"venue"`
	Umpire    string    `json:"umpire,omitempty"`
	Official  string    `json:"official,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent builds an Event for f. actor may be nil.
func NewEvent(t EventType, f domain.Fixture, actor *domain.UserIdentity, at time.Time) Event {
	e := Event{
		Type: t,
		Fixture: FixturePayload{
			ID:        f.ID.String(),
			TeamA:     f.TeamA,
			TeamB:     f.TeamB,
			Date:      f.Date.Format(domain.DateLayout),
			Time:      f.Time,
			Venue:     f.Venue,
			Umpire:    f.Umpire,
			Official:  f.Official,
			CreatedAt: f.CreatedAt,
			UpdatedAt: f.UpdatedAt,
		},
		At: at,
	}
	if actor != nil {
		e.Actor = actor.Name
	}
	return e
}

// Publisher delivers an Event to some set of listeners.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi fans an Event out to every publisher in order. All publishers are
// tried; their errors are joined.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
