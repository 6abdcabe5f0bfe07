package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/namsport/fixturedesk/spec"
)

// TestOpenAPI_documentsEveryRoute guards against routes drifting out of the
// embedded document.
func TestOpenAPI_documentsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	want := map[string][]string{
		"/healthz":        {"get"},
		"/fixtures":       {"get", "post"},
		"/fixtures/check": {"post"},
		"/fixtures/live":  {"get"},
		"/fixtures/{id}":  {"get", "put"},
		"/teams":          {"get", "post"},
		"/teams/names":    {"get"},
		"/teams/{id}":     {"get", "put"},
		"/export":         {"get"},
	}
	for path, methods := range want {
		item, ok := doc.Paths[path]
		require.True(t, ok, "missing path %s", path)
		for _, m := range methods {
			assert.Contains(t, item, m, "%s %s", m, path)
		}
	}
}
