package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/namsport/fixturedesk/internal/domain"
)

func TestNewPairing_OrderIndependent(t *testing.T) {
	ab := domain.NewPairing("Saints", "Wanderers")
	ba := domain.NewPairing("Wanderers", "Saints")

	assert.Equal(t, ab, ba)
	assert.Equal(t, ab.Key(), ba.Key())
	assert.Equal(t, "Saints", ab.A)
}

func TestPairingKey_DistinguishesConcatenations(t *testing.T) {
	// "A B"+"C" and "A"+"B C" must not collide.
	p1 := domain.NewPairing("A B", "C")
	p2 := domain.NewPairing("A", "B C")

	assert.NotEqual(t, p1.Key(), p2.Key())
}

func TestProposalFrom(t *testing.T) {
	f := domain.Fixture{
		TeamA: "Saints",
		TeamB: "Wanderers",
		Date:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:  "07:05",
		Venue: "Windhoek",
	}

	p := domain.ProposalFrom(f)

	assert.Equal(t, "2025-06-01", p.Date)
	assert.Equal(t, "07:05", p.Time)
	assert.Empty(t, domain.ProposalFrom(domain.Fixture{}).Date)
}
