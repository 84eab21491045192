package analysis

// Signals are the normalized classifier inputs derived from raw provider
// payloads. Extraction is pure and never fails: missing input yields an
// empty signal, not an error.
type Signals struct {
	// DependencyNames is the kind-agnostic identifier set used for
	// membership tests.
	DependencyNames map[string]bool
	// Dependencies preserves manifest declaration order for the profile.
	Dependencies []Dependency
	// Files is the path set for structural checks.
	Files map[string]bool
	// FileList preserves file-tree order for entry-point detection.
	FileList []string
	// Languages maps language name to byte count, passed through unchanged.
	Languages map[string]int64
	// Readme is the raw README text.
	Readme string
}

// ExtractSignals normalizes raw provider output into lookup structures.
func ExtractSignals(files []string, deps []Dependency, languages map[string]int64, readme string) Signals {
	sig := Signals{
		DependencyNames: make(map[string]bool, len(deps)),
		Dependencies:    deps,
		Files:           make(map[string]bool, len(files)),
		FileList:        files,
		Languages:       languages,
		Readme:          readme,
	}
	if sig.Languages == nil {
		sig.Languages = map[string]int64{}
	}
	for _, d := range deps {
		sig.DependencyNames[d.Name] = true
	}
	for _, f := range files {
		sig.Files[f] = true
	}
	return sig
}
