package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namsport/fixturedesk/internal/broadcast"
	"github.com/namsport/fixturedesk/internal/domain"
	"github.com/namsport/fixturedesk/internal/repo"
	"github.com/namsport/fixturedesk/internal/service"
)

// mockFixtureRepo is a hand-written test double for repo.FixtureRepo.
// Each method is a function field; set only the ones your test needs.
type mockFixtureRepo struct {
	create  func(ctx context.Context, f domain.Fixture) (domain.Fixture, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Fixture, error)
	list    func(ctx context.Context) ([]domain.Fixture, error)
	update  func(ctx context.Context, f domain.Fixture) (domain.Fixture, error)
}

func (m *mockFixtureRepo) Create(ctx context.Context, f domain.Fixture) (domain.Fixture, error) {
	return m.create(ctx, f)
}
func (m *mockFixtureRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Fixture, error) {
	return m.getByID(ctx, id)
}
func (m *mockFixtureRepo) List(ctx context.Context) ([]domain.Fixture, error) {
	return m.list(ctx)
}
func (m *mockFixtureRepo) Update(ctx context.Context, f domain.Fixture) (domain.Fixture, error) {
	return m.update(ctx, f)
}

var _ repo.FixtureRepo = (*mockFixtureRepo)(nil)

// memoryFixtureRepo returns a mock backed by a slice. Create assigns a fresh
// id the way the database does.
func memoryFixtureRepo(seed ...domain.Fixture) (*mockFixtureRepo, *[]domain.Fixture) {
	stored := append([]domain.Fixture{}, seed...)
	m := &mockFixtureRepo{
		create: func(_ context.Context, f domain.Fixture) (domain.Fixture, error) {
			f.ID = uuid.New()
			f.UpdatedAt = f.CreatedAt
			stored = append(stored, f)
			return f, nil
		},
		list: func(_ context.Context) ([]domain.Fixture, error) {
			return append([]domain.Fixture{}, stored...), nil
		},
		update: func(_ context.Context, f domain.Fixture) (domain.Fixture, error) {
			for i := range stored {
				if stored[i].ID == f.ID {
					stored[i] = f
					return f, nil
				}
			}
			return domain.Fixture{}, domain.ErrNotFound
		},
	}
	return m, &stored
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []broadcast.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e broadcast.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type staticDirectory []string

func (d staticDirectory) ListNames(context.Context) ([]string, error) { return d, nil }

// ---- helpers ---------------------------------------------------------------

var (
	staff    = &domain.UserIdentity{Subject: "tok-1", Name: "Ndapewa", Staff: true}
	visitor  = &domain.UserIdentity{Subject: "tok-2", Name: "Visitor"}
	fakeNow  = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	matchDay = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
)

func proposal(a, b string) domain.Proposal {
	return domain.Proposal{
		TeamA: a,
		TeamB: b,
		Date:  matchDay.Format(domain.DateLayout),
		Time:  "14:00",
		Venue: "Windhoek Hockey Club",
	}
}

func storedFixture(a, b string) domain.Fixture {
	created := fakeNow.Add(-24 * time.Hour)
	return domain.Fixture{
		ID:        uuid.New(),
		TeamA:     a,
		TeamB:     b,
		Date:      matchDay,
		Time:      "14:00",
		Venue:     "Windhoek Hockey Club",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func newFixtureService(r repo.FixtureRepo, opts ...service.FixtureOption) *service.FixtureService {
	opts = append([]service.FixtureOption{service.WithClock(clockwork.NewFakeClockAt(fakeNow))}, opts...)
	return service.NewFixtureService(r, opts...)
}

// ---- Create ----------------------------------------------------------------

func TestFixtureService_Create_EmptyStore(t *testing.T) {
	r, all := memoryFixtureRepo()
	svc := newFixtureService(r)

	got, err := svc.Create(context.Background(), staff, proposal("Saints", "Wanderers"))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "store assigns the id")
	assert.Equal(t, fakeNow, got.CreatedAt)
	assert.Len(t, *all, 1)
}

func TestFixtureService_Create_ReverseDuplicate(t *testing.T) {
	existing := storedFixture("Saints", "Wanderers")
	r, all := memoryFixtureRepo(existing)
	svc := newFixtureService(r)

	_, err := svc.Create(context.Background(), staff, proposal("Wanderers", "Saints"))

	rej, ok := domain.AsRejection(err)
	require.True(t, ok, "expected a RejectionError, got %v", err)
	assert.Equal(t, domain.ReasonDuplicateMatchup, rej.Reason)
	assert.Equal(t, existing.ID, rej.ConflictingID)
	assert.Len(t, *all, 1, "nothing committed")
}

func TestFixtureService_Create_NoCommitOnRejection(t *testing.T) {
	r := &mockFixtureRepo{
		list: func(context.Context) ([]domain.Fixture, error) { return nil, nil },
		create: func(context.Context, domain.Fixture) (domain.Fixture, error) {
			t.Fatal("Create must not be called for a rejected proposal")
			return domain.Fixture{}, nil
		},
	}
	svc := newFixtureService(r)

	_, err := svc.Create(context.Background(), staff, proposal("Saints", "Saints"))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFixtureService_Create_StoresCanonicalTime(t *testing.T) {
	r, all := memoryFixtureRepo()
	svc := newFixtureService(r)

	p := proposal("Saints", "Wanderers")
	p.Time = "7:05"
	got, err := svc.Create(context.Background(), staff, p)

	require.NoError(t, err)
	assert.Equal(t, "07:05", got.Time)
	assert.Equal(t, matchDay, (*all)[0].Date)
}

func TestFixtureService_Create_BadTimeNotCommitted(t *testing.T) {
	r, all := memoryFixtureRepo()
	svc := newFixtureService(r)

	p := proposal("Saints", "Wanderers")
	p.Time = "banana"
	_, err := svc.Create(context.Background(), staff, p)

	rej, ok := domain.AsRejection(err)
	require.True(t, ok, "expected a RejectionError, got %v", err)
	assert.Equal(t, domain.ReasonInvalidField, rej.Reason)
	assert.Empty(t, *all)
}

func TestFixtureService_Create_RequiresStaff(t *testing.T) {
	r, _ := memoryFixtureRepo()
	svc := newFixtureService(r)

	_, err := svc.Create(context.Background(), nil, proposal("Saints", "Wanderers"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Create(context.Background(), visitor, proposal("Saints", "Wanderers"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFixtureService_Create_ListFails(t *testing.T) {
	r := &mockFixtureRepo{
		list: func(context.Context) ([]domain.Fixture, error) { return nil, errors.New("connection refused") },
	}
	svc := newFixtureService(r)

	_, err := svc.Create(context.Background(), staff, proposal("Saints", "Wanderers"))

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

func TestFixtureService_Create_CommitFails(t *testing.T) {
	r := &mockFixtureRepo{
		list: func(context.Context) ([]domain.Fixture, error) { return nil, nil },
		create: func(context.Context, domain.Fixture) (domain.Fixture, error) {
			return domain.Fixture{}, errors.New("write timeout")
		},
	}
	pub := &recordingPublisher{}
	svc := newFixtureService(r, service.WithPublisher(pub))

	_, err := svc.Create(context.Background(), staff, proposal("Saints", "Wanderers"))

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, pub.events, "no event for a failed commit")
}

func TestFixtureService_Create_PublishesEvent(t *testing.T) {
	r, _ := memoryFixtureRepo()
	pub := &recordingPublisher{}
	svc := newFixtureService(r, service.WithPublisher(pub))

	got, err := svc.Create(context.Background(), staff, proposal("Saints", "Wanderers"))

	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	assert.Equal(t, broadcast.FixtureCreated, pub.events[0].Type)
	assert.Equal(t, got.ID.String(), pub.events[0].Fixture.ID)
	assert.Equal(t, "Ndapewa", pub.events[0].Actor)
}

func TestFixtureService_Create_PublishFailureIsNotAnError(t *testing.T) {
	r, _ := memoryFixtureRepo()
	pub := &recordingPublisher{err: errors.New("nats: connection closed")}
	svc := newFixtureService(r, service.WithPublisher(pub))

	_, err := svc.Create(context.Background(), staff, proposal("Saints", "Wanderers"))

	assert.NoError(t, err)
}

func TestFixtureService_Create_KnownTeamsCheck(t *testing.T) {
	r, _ := memoryFixtureRepo()
	svc := newFixtureService(r, service.WithKnownTeamsCheck(staticDirectory{"Saints", "Wanderers"}))

	_, err := svc.Create(context.Background(), staff, proposal("Saints", "Ghosts"))

	rej, ok := domain.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonUnknownTeam, rej.Reason)
	assert.Equal(t, []string{"Ghosts"}, rej.UnknownTeams)

	_, err = svc.Create(context.Background(), staff, proposal("Saints", "Wanderers"))
	assert.NoError(t, err)
}

// ---- Update ----------------------------------------------------------------

func TestFixtureService_Update_KeepsIdentity(t *testing.T) {
	existing := storedFixture("Saints", "Wanderers")
	r, _ := memoryFixtureRepo(existing)
	pub := &recordingPublisher{}
	svc := newFixtureService(r, service.WithPublisher(pub))

	edit := proposal("Saints", "Wanderers")
	edit.Venue = "Independence Stadium"
	got, err := svc.Update(context.Background(), staff, existing.ID, edit)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, existing.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Independence Stadium", got.Venue)
	require.Len(t, pub.events, 1)
	assert.Equal(t, broadcast.FixtureUpdated, pub.events[0].Type)
}

func TestFixtureService_Update_IntoTakenPairing(t *testing.T) {
	a := storedFixture("Saints", "Wanderers")
	b := storedFixture("Saints", "Coastal")
	r, _ := memoryFixtureRepo(a, b)
	svc := newFixtureService(r)

	_, err := svc.Update(context.Background(), staff, b.ID, proposal("Wanderers", "Saints"))

	rej, ok := domain.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonDuplicateMatchup, rej.Reason)
	assert.Equal(t, a.ID, rej.ConflictingID)
}

func TestFixtureService_Update_UnknownID(t *testing.T) {
	r, _ := memoryFixtureRepo(storedFixture("Saints", "Wanderers"))
	svc := newFixtureService(r)

	_, err := svc.Update(context.Background(), staff, uuid.New(), proposal("Saints", "Coastal"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFixtureService_Update_RequiresStaff(t *testing.T) {
	existing := storedFixture("Saints", "Wanderers")
	r, _ := memoryFixtureRepo(existing)
	svc := newFixtureService(r)

	_, err := svc.Update(context.Background(), visitor, existing.ID, proposal("Saints", "Wanderers"))

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ---- Check -----------------------------------------------------------------

func TestFixtureService_Check_DoesNotCommit(t *testing.T) {
	r, all := memoryFixtureRepo()
	svc := newFixtureService(r)

	got, err := svc.Check(context.Background(), proposal("Saints", "Wanderers"), nil)

	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got.ID)
	assert.Empty(t, *all)
}

func TestFixtureService_Check_Duplicate(t *testing.T) {
	r, _ := memoryFixtureRepo(storedFixture("Saints", "Wanderers"))
	svc := newFixtureService(r)

	_, err := svc.Check(context.Background(), proposal("Wanderers", "Saints"), nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- reads -----------------------------------------------------------------

func TestFixtureService_GetByID_NotFound(t *testing.T) {
	r := &mockFixtureRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Fixture, error) {
			return domain.Fixture{}, domain.ErrNotFound
		},
	}
	svc := newFixtureService(r)

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestFixtureService_List_Filters(t *testing.T) {
	r, _ := memoryFixtureRepo(
		storedFixture("Saints", "Wanderers"),
		storedFixture("Coastal", "Rhinos"),
	)
	svc := newFixtureService(r)

	got, err := svc.List(context.Background(), "  saints ")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Saints", got[0].TeamA)
}

func TestFixtureService_List_NoMatchIsEmptyNotNil(t *testing.T) {
	r, _ := memoryFixtureRepo(storedFixture("Saints", "Wanderers"))
	svc := newFixtureService(r)

	got, err := svc.List(context.Background(), "nobody")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFixtureService_ListPaged(t *testing.T) {
	r, _ := memoryFixtureRepo(
		storedFixture("A", "B"),
		storedFixture("A", "C"),
		storedFixture("A", "D"),
	)
	svc := newFixtureService(r)

	page, limit := 2, 2
	got, total, err := svc.ListPaged(context.Background(), "", domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "D", got[0].TeamB)
}
