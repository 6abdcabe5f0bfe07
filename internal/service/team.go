package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/namsport/fixturedesk/internal/domain"
	"github.com/namsport/fixturedesk/internal/repo"
)

// emailPattern is intentionally loose: something@something.something.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TeamService implements business logic for the team directory.
type TeamService struct {
	teams repo.TeamRepo
}

// NewTeamService constructs a TeamService backed by the provided TeamRepo.
func NewTeamService(teams repo.TeamRepo) *TeamService {
	return &TeamService{teams: teams}
}

// Register validates and persists a new team. The registering official must
// have accepted the federation's terms and conditions.
// Returns domain.ErrConflict if a team with the same name exists.
func (s *TeamService) Register(ctx context.Context, user *domain.UserIdentity, team domain.Team, acceptedTerms bool) (domain.Team, error) {
	if err := domain.RequireStaff(user); err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.Register: %w", err)
	}
	team = normalizeTeam(team)
	if err := validateTeam(team); err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.Register: %w", err)
	}
	if !acceptedTerms {
		return domain.Team{}, fmt.Errorf("service.TeamService.Register: %w: terms and conditions must be accepted", domain.ErrValidation)
	}

	created, err := s.teams.Create(ctx, team)
	if err != nil {
		return domain.Team{}, storeErr("service.TeamService.Register", err)
	}
	return created, nil
}

// Update validates and persists changes to an existing team.
// Fixtures that name the team's old name are not rewritten.
func (s *TeamService) Update(ctx context.Context, user *domain.UserIdentity, team domain.Team) (domain.Team, error) {
	if err := domain.RequireStaff(user); err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.Update: %w", err)
	}
	team = normalizeTeam(team)
	if err := validateTeam(team); err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.Update: %w", err)
	}

	updated, err := s.teams.Update(ctx, team)
	if err != nil {
		return domain.Team{}, storeErr("service.TeamService.Update", err)
	}
	return updated, nil
}

// GetByID returns a single team.
func (s *TeamService) GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	t, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return domain.Team{}, storeErr("service.TeamService.GetByID", err)
	}
	return t, nil
}

// List returns the teams whose name contains query, ordered by name.
func (s *TeamService) List(ctx context.Context, query string) ([]domain.Team, error) {
	all, err := s.teams.List(ctx)
	if err != nil {
		return nil, storeErr("service.TeamService.List", err)
	}
	return domain.Filter(all, query, domain.TeamSearchText), nil
}

// ListPaged returns one page of List(query) and the total number of matches.
func (s *TeamService) ListPaged(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Team, int, error) {
	matches, err := s.List(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	page, total := domain.Paginate(matches, p)
	return page, total, nil
}

// ListNames returns every registered team name. Always non-nil.
func (s *TeamService) ListNames(ctx context.Context) ([]string, error) {
	names, err := s.teams.ListNames(ctx)
	if err != nil {
		return nil, storeErr("service.TeamService.ListNames", err)
	}
	if names == nil {
		return []string{}, nil
	}
	return names, nil
}

func normalizeTeam(t domain.Team) domain.Team {
	t.Name = strings.TrimSpace(t.Name)
	t.ContactPerson = strings.TrimSpace(t.ContactPerson)
	t.ContactPhone = strings.TrimSpace(t.ContactPhone)
	t.ContactEmail = strings.TrimSpace(t.ContactEmail)
	t.UmpireName = strings.TrimSpace(t.UmpireName)
	t.UmpirePhone = strings.TrimSpace(t.UmpirePhone)
	return t
}

// validateTeam enforces the registration form rules shared by Register and Update.
//   - name, contact person and phone, contact email, umpire name and phone are required.
//   - the contact email must look like an address.
func validateTeam(t domain.Team) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", t.Name},
		{"contact_person", t.ContactPerson},
		{"contact_phone", t.ContactPhone},
		{"contact_email", t.ContactEmail},
		{"umpire_name", t.UmpireName},
		{"umpire_phone", t.UmpirePhone},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if !emailPattern.MatchString(t.ContactEmail) {
		return fmt.Errorf("%w: contact_email is not a valid email address", domain.ErrValidation)
	}
	return nil
}
