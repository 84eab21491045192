package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocator(t *testing.T) {
	cases := []struct {
		name    string
		locator string
		want    Identity
	}{
		{"bare owner/name", "facebook/react", Identity{Owner: "facebook", Name: "react"}},
		{"host prefixed", "github.com/golang/go", Identity{Owner: "golang", Name: "go"}},
		{"https url", "https://github.com/vercel/next.js", Identity{Owner: "vercel", Name: "next.js"}},
		{"https url with git suffix", "https://github.com/torvalds/linux.git", Identity{Owner: "torvalds", Name: "linux"}},
		{"ssh remote", "git@github.com:rails/rails.git", Identity{Owner: "rails", Name: "rails"}},
		{"trailing slash", "https://github.com/grafana/loki/", Identity{Owner: "grafana", Name: "loki"}},
		{"surrounding whitespace", "  octocat/hello-world  ", Identity{Owner: "octocat", Name: "hello-world"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveLocator(tc.locator)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveLocatorInvalid(t *testing.T) {
	cases := []struct {
		name    string
		locator string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"single segment", "react"},
		{"too many segments", "a/b/c"},
		{"ssh without colon", "git@github.com/owner/name"},
		{"shell metacharacters", "owner/name;rm"},
		{"embedded space", "own er/name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveLocator(tc.locator)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidLocator)
		})
	}
}
