// Package seed bulk-registers teams from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/namsport/fixturedesk/internal/domain"
)

// File is the on-disk layout of a team seed file:
//
//	teams:
//	  - name: Saints
//	    contact_person: Maria Shikongo
//	    ...
type File struct {
	Teams []TeamEntry `yaml:"teams"`
}

// TeamEntry is one team in a seed file.
type TeamEntry struct {
	Name            string `yaml:"name"`
	ContactPerson   string `yaml:"contact_person"`
	ContactPhone    string `yaml:"contact_phone"`
	ContactEmail    string `yaml:"contact_email"`
	UmpireName      string `yaml:"umpire_name"`
	UmpirePhone     string `yaml:"umpire_phone"`
	PremierDivision bool   `yaml:"premier_division"`
}

func (e TeamEntry) team() domain.Team {
	return domain.Team{
		Name:            e.Name,
		ContactPerson:   e.ContactPerson,
		ContactPhone:    e.ContactPhone,
		ContactEmail:    e.ContactEmail,
		UmpireName:      e.UmpireName,
		UmpirePhone:     e.UmpirePhone,
		PremierDivision: e.PremierDivision,
	}
}

// Registrar is the subset of the team service the seeder needs.
type Registrar interface {
	Register(ctx context.Context, user *domain.UserIdentity, team domain.Team, acceptedTerms bool) (domain.Team, error)
}

// Result tallies a seed run.
type Result struct {
	Registered int
	Skipped    int
	Errors     []string
}

// Summary returns a human-readable summary of the run.
func (r Result) Summary() string {
	return fmt.Sprintf("registered=%d skipped=%d errors=%d", r.Registered, r.Skipped, len(r.Errors))
}

// Parse reads a seed file.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("seed.Parse: %w", err)
	}
	return f, nil
}

// Teams registers every entry of f as user. Names that already exist are
// skipped; other failures are collected and the run continues. Only a store
// outage or cancelled context stops the run early.
func Teams(ctx context.Context, reg Registrar, user *domain.UserIdentity, f File, logger *slog.Logger) (Result, error) {
	var res Result
	for i, entry := range f.Teams {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		_, err := reg.Register(ctx, user, entry.team(), true)
		switch {
		case err == nil:
			res.Registered++
			logger.InfoContext(ctx, "team registered", "name", entry.Name)
		case errors.Is(err, domain.ErrConflict):
			res.Skipped++
			logger.InfoContext(ctx, "team exists, skipping", "name", entry.Name)
		case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
			return res, fmt.Errorf("seed.Teams: entry %d (%s): %w", i+1, entry.Name, err)
		default:
			res.Errors = append(res.Errors, fmt.Sprintf("entry %d (%s): %v", i+1, entry.Name, err))
			logger.WarnContext(ctx, "team rejected", "name", entry.Name, "error", err)
		}
	}
	return res, nil
}
