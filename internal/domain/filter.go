package domain

import "strings"

// Filter returns the items whose text contains query, ignoring case and
// surrounding whitespace. An empty query returns every item.
// The result is never nil so callers can range over it or encode it as [].
func Filter[T any](items []T, query string, text func(T) string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if q == "" || strings.Contains(strings.ToLower(text(item)), q) {
			out = append(out, item)
		}
	}
	return out
}

// FixtureSearchText is the text a fixture search matches against:
// both team names and the venue.
func FixtureSearchText(f Fixture) string {
	return f.TeamA + " " + f.TeamB + " " + f.Venue
}

// TeamSearchText is the text a team search matches against.
func TeamSearchText(t Team) string {
	return t.Name
}
