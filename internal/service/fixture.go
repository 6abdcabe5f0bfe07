// Package service contains the business logic for the Fixture Desk service.
// Services authorize callers, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/namsport/fixturedesk/internal/broadcast"
	"github.com/namsport/fixturedesk/internal/domain"
	"github.com/namsport/fixturedesk/internal/fixture"
	"github.com/namsport/fixturedesk/internal/repo"
)

// TeamDirectory supplies the names of every registered team.
// repo.TeamRepo and *TeamService both satisfy it.
type TeamDirectory interface {
	ListNames(ctx context.Context) ([]string, error)
}

// FixtureService implements the fetch-validate-commit flow for fixtures.
//
// Every Create and Update re-reads the full fixture list immediately before
// validating. Two staff members racing on the same pairing can both pass
// validation; the store applies last-write-wins.
type FixtureService struct {
	fixtures  repo.FixtureRepo
	directory TeamDirectory // nil unless the known-teams check is enabled
	clock     clockwork.Clock
	publisher broadcast.Publisher
	logger    *slog.Logger
}

// FixtureOption configures a FixtureService.
type FixtureOption func(*FixtureService)

// WithClock sets the clock used to stamp created_at.
func WithClock(c clockwork.Clock) FixtureOption {
	return func(s *FixtureService) { s.clock = c }
}

// WithPublisher sets where committed changes are announced.
func WithPublisher(p broadcast.Publisher) FixtureOption {
	return func(s *FixtureService) { s.publisher = p }
}

// WithLogger sets the logger used for publish failures.
func WithLogger(l *slog.Logger) FixtureOption {
	return func(s *FixtureService) { s.logger = l }
}

// WithKnownTeamsCheck makes Create, Update and Check reject fixtures that
// name a team absent from dir.
func WithKnownTeamsCheck(dir TeamDirectory) FixtureOption {
	return func(s *FixtureService) { s.directory = dir }
}

// NewFixtureService constructs a FixtureService backed by the provided FixtureRepo.
func NewFixtureService(r repo.FixtureRepo, opts ...FixtureOption) *FixtureService {
	s := &FixtureService{
		fixtures:  r,
		clock:     clockwork.NewRealClock(),
		publisher: broadcast.Multi{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates proposal against a fresh snapshot and persists it.
// Returns domain.ErrUnauthorized/ErrForbidden for non-staff callers, a
// *domain.RejectionError for rule violations and domain.ErrStoreUnavailable
// when the store cannot be reached.
func (s *FixtureService) Create(ctx context.Context, user *domain.UserIdentity, proposal domain.Proposal) (domain.Fixture, error) {
	if err := domain.RequireStaff(user); err != nil {
		return domain.Fixture{}, fmt.Errorf("service.FixtureService.Create: %w", err)
	}

	prepared, err := s.prepare(ctx, proposal, nil)
	if err != nil {
		return domain.Fixture{}, fmt.Errorf("service.FixtureService.Create: %w", err)
	}

	created, err := s.fixtures.Create(ctx, prepared)
	if err != nil {
		return domain.Fixture{}, storeErr("service.FixtureService.Create", err)
	}

	s.publish(ctx, broadcast.FixtureCreated, created, user)
	return created, nil
}

// Update validates proposal as an edit of fixture id and persists it.
// The fixture being edited is exempt from the duplicate-pairing check.
// Returns domain.ErrNotFound if id does not exist.
func (s *FixtureService) Update(ctx context.Context, user *domain.UserIdentity, id uuid.UUID, proposal domain.Proposal) (domain.Fixture, error) {
	if err := domain.RequireStaff(user); err != nil {
		return domain.Fixture{}, fmt.Errorf("service.FixtureService.Update: %w", err)
	}

	prepared, err := s.prepare(ctx, proposal, &id)
	if err != nil {
		return domain.Fixture{}, fmt.Errorf("service.FixtureService.Update: %w", err)
	}

	updated, err := s.fixtures.Update(ctx, prepared)
	if err != nil {
		return domain.Fixture{}, storeErr("service.FixtureService.Update", err)
	}

	s.publish(ctx, broadcast.FixtureUpdated, updated, user)
	return updated, nil
}

// Check runs the same validation as Create (editingID nil) or Update without
// committing anything, and returns the fixture that would be stored.
func (s *FixtureService) Check(ctx context.Context, proposal domain.Proposal, editingID *uuid.UUID) (domain.Fixture, error) {
	prepared, err := s.prepare(ctx, proposal, editingID)
	if err != nil {
		return domain.Fixture{}, fmt.Errorf("service.FixtureService.Check: %w", err)
	}
	return prepared, nil
}

// GetByID returns a single fixture by ID.
func (s *FixtureService) GetByID(ctx context.Context, id uuid.UUID) (domain.Fixture, error) {
	f, err := s.fixtures.GetByID(ctx, id)
	if err != nil {
		return domain.Fixture{}, storeErr("service.FixtureService.GetByID", err)
	}
	return f, nil
}

// List returns every fixture matching query, most recently created first.
// Always returns a non-nil slice.
func (s *FixtureService) List(ctx context.Context, query string) ([]domain.Fixture, error) {
	all, err := s.fixtures.List(ctx)
	if err != nil {
		return nil, storeErr("service.FixtureService.List", err)
	}
	return domain.Filter(all, query, domain.FixtureSearchText), nil
}

// ListPaged returns one page of the fixtures matching query and the total
// number of matches.
func (s *FixtureService) ListPaged(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Fixture, int, error) {
	matches, err := s.List(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	page, total := domain.Paginate(matches, p)
	return page, total, nil
}

// prepare fetches the snapshot and runs the validator, then the optional
// directory check.
func (s *FixtureService) prepare(ctx context.Context, proposal domain.Proposal, editingID *uuid.UUID) (domain.Fixture, error) {
	snapshot, err := s.fixtures.List(ctx)
	if err != nil {
		return domain.Fixture{}, storeErr("list fixtures", err)
	}

	prepared, err := fixture.ValidateAndPrepare(proposal, snapshot, editingID, s.clock.Now().UTC())
	if err != nil {
		return domain.Fixture{}, err
	}

	if s.directory != nil {
		names, err := s.directory.ListNames(ctx)
		if err != nil {
			return domain.Fixture{}, storeErr("list team names", err)
		}
		if err := fixture.CheckKnownTeams(prepared, names); err != nil {
			return domain.Fixture{}, err
		}
	}
	return prepared, nil
}

// publish announces a committed change. The commit has already happened, so
// a failure is logged and not returned.
func (s *FixtureService) publish(ctx context.Context, t broadcast.EventType, f domain.Fixture, user *domain.UserIdentity) {
	e := broadcast.NewEvent(t, f, user, s.clock.Now().UTC())
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "publish fixture event failed",
			"event", t,
			"fixture_id", f.ID,
			"error", err,
		)
	}
}

// storeErr wraps a repo error for the caller. NotFound and Conflict pass
// through; anything else is reported as domain.ErrStoreUnavailable.
func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
