package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/namsport/fixturedesk/internal/domain"
)

// TeamRepo defines the persistence operations for the team directory.
type TeamRepo interface {
	// Create inserts a new team. Returns domain.ErrConflict if the name is taken.
	Create(ctx context.Context, t domain.Team) (domain.Team, error)

	// GetByID retrieves a single team. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error)

	// List returns every team ordered by name.
	List(ctx context.Context) ([]domain.Team, error)

	// ListNames returns every team name ordered alphabetically.
	ListNames(ctx context.Context) ([]string, error)

	// Update overwrites the mutable fields of a team.
	// Returns domain.ErrNotFound if absent, domain.ErrConflict if the new
	// name belongs to another team.
	Update(ctx context.Context, t domain.Team) (domain.Team, error)
}

// pgTeamRepo is the Postgres implementation of TeamRepo.
type pgTeamRepo struct {
	db db
}

// NewTeamRepo constructs a TeamRepo backed by the provided db connection.
func NewTeamRepo(db db) TeamRepo {
	return &pgTeamRepo{db: db}
}

const teamColumns = `id, name, contact_person, contact_phone, contact_email, umpire_name, umpire_phone, premier_division, created_at, updated_at`

func (r *pgTeamRepo) Create(ctx context.Context, t domain.Team) (domain.Team, error) {
	const q = `
		INSERT INTO teams (name, contact_person, contact_phone, contact_email, umpire_name, umpire_phone, premier_division)
		VALUES (@name, @contact_person, @contact_phone, @contact_email, @umpire_name, @umpire_phone, @premier_division)
		RETURNING ` + teamColumns

	row := r.db.QueryRow(ctx, q, teamArgs(t))
	result, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	const q = `SELECT ` + teamColumns + ` FROM teams WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTeamRepo) List(ctx context.Context) ([]domain.Team, error) {
	const q = `SELECT ` + teamColumns + ` FROM teams ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.List: %w", err)
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TeamRepo.List: scan: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.List: rows: %w", err)
	}
	return teams, nil
}

func (r *pgTeamRepo) ListNames(ctx context.Context) ([]string, error) {
	const q = `SELECT name FROM teams ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.ListNames: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.ListNames: %w", err)
	}
	return names, nil
}

func (r *pgTeamRepo) Update(ctx context.Context, t domain.Team) (domain.Team, error) {
	const q = `
		UPDATE teams
		SET name             = @name,
		    contact_person   = @contact_person,
		    contact_phone    = @contact_phone,
		    contact_email    = @contact_email,
		    umpire_name      = @umpire_name,
		    umpire_phone     = @umpire_phone,
		    premier_division = @premier_division,
		    updated_at       = now()
		WHERE id = @id
		RETURNING ` + teamColumns

	args := teamArgs(t)
	args["id"] = t.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.Update: %w", err)
	}
	return result, nil
}

func teamArgs(t domain.Team) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":             t.Name,
		"contact_person":   t.ContactPerson,
		"contact_phone":    t.ContactPhone,
		"contact_email":    t.ContactEmail,
		"umpire_name":      t.UmpireName,
		"umpire_phone":     t.UmpirePhone,
		"premier_division": t.PremierDivision,
	}
}

// scanTeam maps a single database row into a domain.Team.
func scanTeam(s scanner) (domain.Team, error) {
	var (
		t  domain.Team
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Name, &t.ContactPerson, &t.ContactPhone, &t.ContactEmail,
		&t.UmpireName, &t.UmpirePhone, &t.PremierDivision, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Team{}, translate(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
