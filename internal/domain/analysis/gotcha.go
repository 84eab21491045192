package analysis

import "strings"

// maxDependencies is the bloat threshold for the dependency-count gotcha.
const maxDependencies = 50

// apiKeyMarkers are matched case-sensitively against README text.
var apiKeyMarkers = []string{"API_KEY", "API key"}

// Gotcha texts are fixed; each check appends at most one.
const (
	GotchaAPIKey    = "Requires API keys or secrets: configure credentials before running."
	GotchaDepsBloat = "Heavy dependency footprint (more than 50 declared packages): expect slow installs and a wide audit surface."
)

// DetectGotchas flags operational caveats from README text and dependency
// count. Output order follows check declaration order.
func DetectGotchas(readme string, deps []Dependency) []string {
	var out []string
	for _, marker := range apiKeyMarkers {
		if strings.Contains(readme, marker) {
			out = append(out, GotchaAPIKey)
			break
		}
	}
	if len(deps) > maxDependencies {
		out = append(out, GotchaDepsBloat)
	}
	return out
}
