package domain

// ExportRow is a single row in the full fixture export.
// It is a flat, denormalized view: one row per fixture, with the contact
// details of each team looked up from the team directory. Teams that are not
// in the directory yield empty contact fields.
type ExportRow struct {
	FixtureID string
	Date      string // "2006-01-02" formatted date
	Time      string
	Venue     string
	Umpire    string
	Official  string

	TeamA        string
	TeamAContact string
	TeamB        string
	TeamBContact string

	// Premier is true when both teams play in the premier division.
	Premier bool
}
