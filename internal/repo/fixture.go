package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/namsport/fixturedesk/internal/domain"
)

// FixtureRepo defines the persistence operations for Fixtures.
// There is deliberately no Delete: fixtures are never removed.
type FixtureRepo interface {
	// Create inserts a new fixture and returns the persisted record with the
	// DB-generated id. CreatedAt is taken from the argument.
	Create(ctx context.Context, f domain.Fixture) (domain.Fixture, error)

	// GetByID retrieves a single fixture by id.
	// Returns domain.ErrNotFound if no fixture with that id exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Fixture, error)

	// List returns every fixture, most recently created first.
	List(ctx context.Context) ([]domain.Fixture, error)

	// Update overwrites every field except id and created_at.
	// Returns domain.ErrNotFound if no fixture with that id exists.
	Update(ctx context.Context, f domain.Fixture) (domain.Fixture, error)
}

// pgFixtureRepo is the Postgres implementation of FixtureRepo.
type pgFixtureRepo struct {
	db db
}

// NewFixtureRepo constructs a FixtureRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewFixtureRepo(db db) FixtureRepo {
	return &pgFixtureRepo{db: db}
}

const fixtureColumns = `id, team_a, team_b, match_date, kickoff_time, venue, umpire, official, created_at, updated_at`

func (r *pgFixtureRepo) Create(ctx context.Context, f domain.Fixture) (domain.Fixture, error) {
	const q = `
		INSERT INTO fixtures (team_a, team_b, match_date, kickoff_time, venue, umpire, official, created_at, updated_at)
		VALUES (@team_a, @team_b, @match_date, @kickoff_time, @venue, @umpire, @official, @created_at, @created_at)
		RETURNING ` + fixtureColumns

	row := r.db.QueryRow(ctx, q, fixtureArgs(f))
	result, err := scanFixture(row)
	if err != nil {
		return domain.Fixture{}, fmt.Errorf("repo.FixtureRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgFixtureRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Fixture, error) {
	const q = `SELECT ` + fixtureColumns + ` FROM fixtures WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanFixture(row)
	if err != nil {
		return domain.Fixture{}, fmt.Errorf("repo.FixtureRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgFixtureRepo) List(ctx context.Context) ([]domain.Fixture, error) {
	const q = `SELECT ` + fixtureColumns + ` FROM fixtures ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.FixtureRepo.List: %w", err)
	}
	defer rows.Close()

	fixtures := []domain.Fixture{}
	for rows.Next() {
		f, err := scanFixture(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.FixtureRepo.List: scan: %w", err)
		}
		fixtures = append(fixtures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.FixtureRepo.List: rows: %w", err)
	}
	return fixtures, nil
}

// Update is last-write-wins: there is no version check.
func (r *pgFixtureRepo) Update(ctx context.Context, f domain.Fixture) (domain.Fixture, error) {
	const q = `
		UPDATE fixtures
		SET team_a       = @team_a,
		    team_b       = @team_b,
		    match_date   = @match_date,
		    kickoff_time = @kickoff_time,
		    venue        = @venue,
		    umpire       = @umpire,
		    official     = @official,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + fixtureColumns

	args := fixtureArgs(f)
	args["id"] = f.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanFixture(row)
	if err != nil {
		return domain.Fixture{}, fmt.Errorf("repo.FixtureRepo.Update: %w", err)
	}
	return result, nil
}

func fixtureArgs(f domain.Fixture) pgx.NamedArgs {
	return pgx.NamedArgs{
		"team_a":       f.TeamA,
		"team_b":       f.TeamB,
		"match_date":   pgtype.Date{Time: f.Date, Valid: true},
		"kickoff_time": f.Time,
		"venue":        f.Venue,
		"umpire":       f.Umpire,
		"official":     f.Official,
		"created_at":   f.CreatedAt,
	}
}

// scanFixture maps a single database row into a domain.Fixture.
func scanFixture(s scanner) (domain.Fixture, error) {
	var (
		f    domain.Fixture
		id   pgtype.UUID
		date pgtype.Date
	)

	err := s.Scan(&id, &f.TeamA, &f.TeamB, &date, &f.Time, &f.Venue, &f.Umpire, &f.Official, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return domain.Fixture{}, translate(err)
	}

	f.ID = uuid.UUID(id.Bytes)
	f.Date = date.Time
	return f, nil
}
