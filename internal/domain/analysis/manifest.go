package analysis

import (
	"encoding/json"
	"strings"
)

// ManifestPath is the only manifest RepoLens reads.
const ManifestPath = "package.json"

// ParseManifest extracts the ordered dependency list from package.json
// content. Malformed content is treated as "no dependencies declared" and
// yields an empty list, never an error.
func ParseManifest(content string) []Dependency {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &top); err != nil {
		return nil
	}
	var out []Dependency
	out = append(out, decodeDependencyBlock(top["dependencies"], KindProduction)...)
	out = append(out, decodeDependencyBlock(top["devDependencies"], KindDevelopment)...)
	return out
}

// decodeDependencyBlock walks the raw object token by token so declaration
// order survives; decoding into a map would scramble it. Entries are unique
// by name within a block, first declaration wins.
func decodeDependencyBlock(raw json.RawMessage, kind DependencyKind) []Dependency {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}

	seen := make(map[string]bool)
	var out []Dependency
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil
		}
		version, ok := valTok.(string)
		if !ok {
			// package.json dependency values are version strings; anything
			// else means this is not a dependency block.
			return nil
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Dependency{Name: name, Version: version, Kind: kind})
	}
	return out
}
