package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifestPreservesDeclarationOrder(t *testing.T) {
	content := `{
		"name": "demo",
		"dependencies": {
			"zebra": "^1.0.0",
			"alpha": "^2.0.0",
			"middle": "~3.1.0"
		},
		"devDependencies": {
			"vitest": "^1.2.0",
			"typescript": "^5.0.0"
		}
	}`

	deps := ParseManifest(content)
	require.Len(t, deps, 5)
	assert.Equal(t, Dependency{Name: "zebra", Version: "^1.0.0", Kind: KindProduction}, deps[0])
	assert.Equal(t, Dependency{Name: "alpha", Version: "^2.0.0", Kind: KindProduction}, deps[1])
	assert.Equal(t, Dependency{Name: "middle", Version: "~3.1.0", Kind: KindProduction}, deps[2])
	assert.Equal(t, Dependency{Name: "vitest", Version: "^1.2.0", Kind: KindDevelopment}, deps[3])
	assert.Equal(t, Dependency{Name: "typescript", Version: "^5.0.0", Kind: KindDevelopment}, deps[4])
}

func TestParseManifestMalformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t"},
		{"truncated json", `{"dependencies": {"react":`},
		{"not an object", `["react"]`},
		{"plain text", "this is not json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, ParseManifest(tc.content))
		})
	}
}

func TestParseManifestNoDependencyBlocks(t *testing.T) {
	assert.Empty(t, ParseManifest(`{"name": "demo", "version": "0.1.0"}`))
}

func TestParseManifestNonStringVersionDropsBlock(t *testing.T) {
	content := `{
		"dependencies": {"react": {"version": "18"}},
		"devDependencies": {"vitest": "^1.0.0"}
	}`

	deps := ParseManifest(content)
	require.Len(t, deps, 1)
	assert.Equal(t, "vitest", deps[0].Name)
	assert.Equal(t, KindDevelopment, deps[0].Kind)
}

func TestParseManifestDuplicateFirstWins(t *testing.T) {
	content := `{"dependencies": {"lodash": "^4.0.0", "lodash": "^3.0.0"}}`

	deps := ParseManifest(content)
	require.Len(t, deps, 1)
	assert.Equal(t, "^4.0.0", deps[0].Version)
}
