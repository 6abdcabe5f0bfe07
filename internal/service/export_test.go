package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namsport/fixturedesk/internal/domain"
	"github.com/namsport/fixturedesk/internal/service"
)

func teamsRepo(teams ...domain.Team) *mockTeamRepo {
	return &mockTeamRepo{
		list: func(context.Context) ([]domain.Team, error) { return teams, nil },
	}
}

func fixturesRepo(fixtures ...domain.Fixture) *mockFixtureRepo {
	return &mockFixtureRepo{
		list: func(context.Context) ([]domain.Fixture, error) { return fixtures, nil },
	}
}

func TestExportService_Export_JoinsTeamContacts(t *testing.T) {
	f := storedFixture("Saints", "Wanderers")
	f.Umpire = "Peter Nel"
	svc := service.NewExportService(
		fixturesRepo(f),
		teamsRepo(
			domain.Team{Name: "Saints", ContactPerson: "Maria", ContactPhone: "0811", PremierDivision: true},
			domain.Team{Name: "Wanderers", ContactPerson: "Johan", PremierDivision: true},
		),
	)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.ID.String(), rows[0].FixtureID)
	assert.Equal(t, "2025-03-15", rows[0].Date)
	assert.Equal(t, "Maria (0811)", rows[0].TeamAContact)
	assert.Equal(t, "Johan", rows[0].TeamBContact)
	assert.Equal(t, "Peter Nel", rows[0].Umpire)
	assert.True(t, rows[0].Premier)
}

func TestExportService_Export_UnknownTeamHasNoContact(t *testing.T) {
	svc := service.NewExportService(
		fixturesRepo(storedFixture("Saints", "Ghosts")),
		teamsRepo(domain.Team{Name: "Saints", ContactPerson: "Maria", PremierDivision: true}),
	)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].TeamBContact)
	assert.False(t, rows[0].Premier, "premier needs both teams in the division")
}

func TestExportService_Export_OrderedByDateThenTime(t *testing.T) {
	late := storedFixture("A", "B")
	late.Date = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	early := storedFixture("A", "C")
	early.Time = "16:00"
	earlier := storedFixture("A", "D")
	earlier.Time = "09:00"

	svc := service.NewExportService(fixturesRepo(late, early, earlier), teamsRepo())

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "D", rows[0].TeamB)
	assert.Equal(t, "C", rows[1].TeamB)
	assert.Equal(t, "B", rows[2].TeamB)
}

func TestExportService_Export_SameDateByClockTime(t *testing.T) {
	evening := storedFixture("A", "B")
	evening.Time = "17:00"
	morning := storedFixture("A", "C")
	morning.Time = "7:05"
	noon := storedFixture("A", "D")
	noon.Time = "12:00"

	svc := service.NewExportService(fixturesRepo(evening, morning, noon), teamsRepo())

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"7:05", "12:00", "17:00"}, []string{rows[0].Time, rows[1].Time, rows[2].Time})
}

func TestExportService_Export_Empty(t *testing.T) {
	svc := service.NewExportService(fixturesRepo(), teamsRepo())

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_RepoError(t *testing.T) {
	svc := service.NewExportService(
		&mockFixtureRepo{
			list: func(context.Context) ([]domain.Fixture, error) { return nil, errors.New("boom") },
		},
		teamsRepo(),
	)

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

