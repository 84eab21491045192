package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleEmptyInput(t *testing.T) {
	p := Assemble(Input{Identity: Identity{Owner: "octocat", Name: "empty"}})

	require.NotNil(t, p)
	assert.Equal(t, "octocat", p.Owner)
	assert.Equal(t, "empty", p.Repo)
	assert.Equal(t, "No description provided.", p.Purpose)
	assert.Equal(t, ArchStandard, p.Architecture)
	assert.Empty(t, p.TechStack)
	assert.Empty(t, p.Capabilities)
	assert.Empty(t, p.SuperPowers)
	assert.Empty(t, p.Dependencies)
	assert.Empty(t, p.EntryPoints)
	assert.Empty(t, p.Gotchas)
	assert.NotNil(t, p.Languages)
}

func TestAssembleFullSignals(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	in := Input{
		Identity:    Identity{Owner: "acme", Name: "studio"},
		URL:         "https://github.com/acme/studio",
		Description: "A generative 3D playground.",
		Files: []string{
			"package.json",
			"src/index.ts",
			"src/components/Scene.tsx",
			"src/services/llm.ts",
		},
		Dependencies: depsOf("openai", "@tensorflow/tfjs", "three", "typescript"),
		Languages:    map[string]int64{"TypeScript": 8000, "CSS": 500},
		Readme:       "Export your OPENAI_API_KEY first.",
		AnalyzedAt:   now,
	}

	p := Assemble(in)

	assert.Equal(t, "A generative 3D playground.", p.Purpose)
	assert.Equal(t, ArchModularMonorepo, p.Architecture)
	assert.Equal(t, []string{"Three.js", "TensorFlow.js", "OpenAI API", "TypeScript", "CSS"}, p.TechStack)
	assert.Equal(t, []string{"src/index.ts"}, p.EntryPoints)
	assert.Equal(t, now, p.AnalyzedAt)

	names := make([]string, 0, len(p.Capabilities))
	for _, c := range p.Capabilities {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Generative AI Integration",
		"On-Device Machine Learning",
		"3D Graphics & Spatial Rendering",
	}, names)

	require.Len(t, p.SuperPowers, 4)
	assert.Equal(t, "Hybrid AI Pipeline", p.SuperPowers[0].Label)
	assert.Equal(t, "Full-Spectrum Intelligence", p.SuperPowers[3].Label)

	require.Len(t, p.Gotchas, 1)
	assert.Equal(t, GotchaAPIKey, p.Gotchas[0])
}

func TestAssembleDeterministic(t *testing.T) {
	in := Input{
		Identity:     Identity{Owner: "acme", Name: "studio"},
		Files:        []string{"src/index.ts", "src/components/App.tsx"},
		Dependencies: depsOf("react", "openai"),
		Languages:    map[string]int64{"TypeScript": 100},
	}

	first := Assemble(in)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Assemble(in))
	}
}
