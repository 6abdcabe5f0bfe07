package fixture

import (
	"strings"

	"github.com/namsport/fixturedesk/internal/domain"
)

// CheckKnownTeams rejects a proposal that names a team absent from the
// directory. It is not part of ValidateAndPrepare; the service runs it only
// when configured to, after ValidateAndPrepare has accepted the proposal.
func CheckKnownTeams(f domain.Fixture, directory []string) error {
	known := make(map[string]struct{}, len(directory))
	for _, name := range directory {
		known[strings.TrimSpace(name)] = struct{}{}
	}

	var fields, unknown []string
	if _, ok := known[strings.TrimSpace(f.TeamA)]; !ok {
		fields = append(fields, "team_a")
		unknown = append(unknown, f.TeamA)
	}
	if _, ok := known[strings.TrimSpace(f.TeamB)]; !ok {
		fields = append(fields, "team_b")
		unknown = append(unknown, f.TeamB)
	}
	if len(unknown) == 0 {
		return nil
	}
	return &domain.RejectionError{
		Reason:       domain.ReasonUnknownTeam,
		Fields:       fields,
		UnknownTeams: unknown,
	}
}
