package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team is a registered club in the federation's team directory.
// Name is unique across the directory; the fixture workflow only ever sees
// the name.
type Team struct {
	ID              uuid.UUID
	Name            string
	ContactPerson   string
	ContactPhone    string
	ContactEmail    string
	UmpireName      string
	UmpirePhone     string
	PremierDivision bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
