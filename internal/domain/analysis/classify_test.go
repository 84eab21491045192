package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depsOf(names ...string) []Dependency {
	out := make([]Dependency, 0, len(names))
	for _, n := range names {
		out = append(out, Dependency{Name: n, Version: "1.0.0", Kind: KindProduction})
	}
	return out
}

func TestClassifyTechStackOrder(t *testing.T) {
	// typescript is declared before react in the manifest, but rule order
	// puts React first; languages come last regardless of byte count.
	sig := ExtractSignals(nil, depsOf("typescript", "react"), map[string]int64{
		"TypeScript": 9000,
		"HTML":       100,
	}, "")

	got := ClassifyTechStack(sig)
	assert.Equal(t, []string{"React", "TypeScript", "HTML"}, got)
}

func TestClassifyTechStackTopThreeLanguages(t *testing.T) {
	sig := ExtractSignals(nil, nil, map[string]int64{
		"Go":         5000,
		"Python":     4000,
		"Shell":      300,
		"Dockerfile": 100,
	}, "")

	got := ClassifyTechStack(sig)
	assert.Equal(t, []string{"Go", "Python", "Shell"}, got)
}

func TestClassifyTechStackDeterministic(t *testing.T) {
	sig := ExtractSignals(nil, depsOf("react", "three", "openai"), map[string]int64{
		"JavaScript": 100,
		"TypeScript": 100,
		"CSS":        100,
	}, "")

	first := ClassifyTechStack(sig)
	for i := 0; i < 20; i++ {
		require.Equal(t, first, ClassifyTechStack(sig))
	}
}

func TestClassifyCapabilitiesAliasesFireOnce(t *testing.T) {
	// Two generative AI SDKs trigger the same capability exactly once.
	sig := ExtractSignals(nil, depsOf("openai", "@anthropic-ai/sdk"), nil, "")

	caps := ClassifyCapabilities(sig)
	require.Len(t, caps, 1)
	assert.Equal(t, "Generative AI Integration", caps[0].Name)
}

func TestClassifyCapabilitiesUniqueNames(t *testing.T) {
	sig := ExtractSignals(nil, depsOf("openai", "three", "@tensorflow/tfjs", "stripe", "ws"), nil, "")

	caps := ClassifyCapabilities(sig)
	seen := map[string]bool{}
	for _, c := range caps {
		require.False(t, seen[c.Name], "duplicate capability %q", c.Name)
		seen[c.Name] = true
	}
	assert.Len(t, caps, 5)
}

func TestClassifyCapabilitiesDeterministic(t *testing.T) {
	sig := ExtractSignals(nil, depsOf("three", "openai", "ws", "pg"), nil, "")

	first := ClassifyCapabilities(sig)
	second := ClassifyCapabilities(sig)
	require.Equal(t, first, second)
}

func TestClassifyCapabilitiesEmpty(t *testing.T) {
	sig := ExtractSignals(nil, depsOf("left-pad", "lodash"), nil, "")
	assert.Empty(t, ClassifyCapabilities(sig))
}

func TestClassifyArchitecture(t *testing.T) {
	cases := []struct {
		name  string
		files []string
		want  string
	}{
		{
			name:  "three signals collapse to modular monorepo",
			files: []string{"src/components/App.tsx", "src/services/api.ts", "src/index.ts"},
			want:  ArchModularMonorepo,
		},
		{
			name:  "components without services",
			files: []string{"src/components/App.tsx", "src/index.ts"},
			want:  ArchComponentBased,
		},
		{
			name:  "api routes only",
			files: []string{"api/users.go", "api/orders.go"},
			want:  ArchAPIDriven,
		},
		{
			name:  "routes directory counts as api signal",
			files: []string{"routes/index.js"},
			want:  ArchAPIDriven,
		},
		{
			name:  "empty tree is standard structure",
			files: nil,
			want:  ArchStandard,
		},
		{
			name:  "unrelated files are standard structure",
			files: []string{"README.md", "Makefile"},
			want:  ArchStandard,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig := ExtractSignals(tc.files, nil, nil, "")
			assert.Equal(t, tc.want, ClassifyArchitecture(sig))
		})
	}
}

func TestDetectEntryPointsPreservesOrder(t *testing.T) {
	got := DetectEntryPoints([]string{"index.ts", "src/App.tsx", "notes.md"})
	assert.Equal(t, []string{"index.ts", "src/App.tsx"}, got)
}

func TestDetectEntryPointsMultipleConventions(t *testing.T) {
	files := []string{"cmd/api/main.go", "scripts/app.py", "docs/guide.md", "web/index.js"}
	got := DetectEntryPoints(files)
	assert.Equal(t, []string{"cmd/api/main.go", "scripts/app.py", "web/index.js"}, got)
}

func TestDetectEntryPointsNoSubstringMatches(t *testing.T) {
	// reindex.ts must not match index.ts: the final path segment has to be
	// exactly a conventional entry name.
	got := DetectEntryPoints([]string{"reindex.ts", "src/domain.go"})
	assert.Empty(t, got)
}

func TestExtractSignalsEmptyInputs(t *testing.T) {
	sig := ExtractSignals(nil, nil, nil, "")
	assert.Empty(t, sig.DependencyNames)
	assert.Empty(t, sig.Files)
	assert.NotNil(t, sig.Languages)
	assert.Empty(t, sig.Languages)
}
