// Package handler implements the HTTP handlers for the Fixture Desk API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, fixture.go, team.go, export.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/namsport/fixturedesk/internal/domain"
)

// FixtureServicer defines the business operations the fixture handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type FixtureServicer interface {
	Create(ctx context.Context, user *domain.UserIdentity, proposal domain.Proposal) (domain.Fixture, error)
	Update(ctx context.Context, user *domain.UserIdentity, id uuid.UUID, proposal domain.Proposal) (domain.Fixture, error)
	Check(ctx context.Context, proposal domain.Proposal, editingID *uuid.UUID) (domain.Fixture, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Fixture, error)
	ListPaged(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Fixture, int, error)
}

// TeamServicer defines the business operations the team handlers depend on.
type TeamServicer interface {
	Register(ctx context.Context, user *domain.UserIdentity, team domain.Team, acceptedTerms bool) (domain.Team, error)
	Update(ctx context.Context, user *domain.UserIdentity, team domain.Team) (domain.Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error)
	ListPaged(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Team, int, error)
	ListNames(ctx context.Context) ([]string, error)
}

// ExportServicer defines the operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Identifier resolves the caller of a request. A nil result means anonymous.
type Identifier interface {
	Identify(r *http.Request) *domain.UserIdentity
}

// Server holds the dependencies of every handler.
type Server struct {
	fixtures FixtureServicer
	teams    TeamServicer
	export   ExportServicer
	auth     Identifier
	live     http.Handler
	openapi  []byte
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLiveFeed mounts h at GET /fixtures/live.
func WithLiveFeed(h http.Handler) Option {
	return func(s *Server) { s.live = h }
}

// WithOpenAPI serves doc at /openapi.yaml and a Swagger UI at /docs/.
func WithOpenAPI(doc []byte) Option {
	return func(s *Server) { s.openapi = doc }
}

// WithLogger sets the logger used for unexpected errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer constructs the Server with all its dependencies. Any servicer may
// be nil in tests that do not exercise its routes.
func NewServer(fixtures FixtureServicer, teams TeamServicer, export ExportServicer, auth Identifier, opts ...Option) *Server {
	s := &Server{
		fixtures: fixtures,
		teams:    teams,
		export:   export,
		auth:     auth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the API router. Cross-cutting middleware is applied by the
// caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	if s.openapi != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
		r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))
	}

	r.Route("/fixtures", func(r chi.Router) {
		r.Get("/", s.ListFixtures)
		r.Post("/", s.CreateFixture)
		r.Post("/check", s.CheckFixture)
		if s.live != nil {
			r.Method(http.MethodGet, "/live", s.live)
		}
		r.Get("/{id}", s.GetFixture)
		r.Put("/{id}", s.UpdateFixture)
	})

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", s.ListTeams)
		r.Post("/", s.RegisterTeam)
		r.Get("/names", s.ListTeamNames)
		r.Get("/{id}", s.GetTeam)
		r.Put("/{id}", s.UpdateTeam)
	})

	r.Get("/export", s.GetExport)

	return r
}

// identify returns the caller of r, or nil when no Identifier is configured.
func (s *Server) identify(r *http.Request) *domain.UserIdentity {
	if s.auth == nil {
		return nil
	}
	return s.auth.Identify(r)
}
