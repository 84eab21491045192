package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectGotchasAPIKeyAndBloatOrder(t *testing.T) {
	deps := make([]Dependency, 0, 60)
	for i := 0; i < 60; i++ {
		deps = append(deps, Dependency{Name: fmt.Sprintf("pkg-%d", i), Version: "1.0.0", Kind: KindProduction})
	}

	got := DetectGotchas("Set the API_KEY env var before running.", deps)
	require.Len(t, got, 2)
	assert.Equal(t, GotchaAPIKey, got[0])
	assert.Equal(t, GotchaDepsBloat, got[1])
}

func TestDetectGotchasMarkerVariants(t *testing.T) {
	cases := []struct {
		name   string
		readme string
		want   bool
	}{
		{"env var spelling", "export MY_API_KEY=abc", true},
		{"prose spelling", "You need an API key from the console.", true},
		{"lowercase does not match", "you need an api key", false},
		{"both spellings flag once", "API_KEY and an API key", true},
		{"no mention", "Just clone and run.", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectGotchas(tc.readme, nil)
			if tc.want {
				require.Len(t, got, 1)
				assert.Equal(t, GotchaAPIKey, got[0])
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestDetectGotchasDependencyThreshold(t *testing.T) {
	atLimit := make([]Dependency, 0, maxDependencies)
	for i := 0; i < maxDependencies; i++ {
		atLimit = append(atLimit, Dependency{Name: fmt.Sprintf("dep-%d", i)})
	}
	assert.Empty(t, DetectGotchas("", atLimit))

	over := append(atLimit, Dependency{Name: "one-more"})
	got := DetectGotchas("", over)
	require.Len(t, got, 1)
	assert.Equal(t, GotchaDepsBloat, got[0])
}
