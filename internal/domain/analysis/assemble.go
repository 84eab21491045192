package analysis

import "time"

// Input carries everything the assembler needs. The caller has already
// resolved identity and fetched raw payloads; missing payloads arrive as
// zero values.
type Input struct {
	Identity     Identity
	URL          string
	Description  string
	Files        []string
	Dependencies []Dependency
	Languages    map[string]int64
	Readme       string
	AnalyzedAt   time.Time
}

// Assemble runs signal extraction once, then every classifier plus the
// gotcha heuristics, then the super-power deriver, and merges the results
// into one immutable profile. A total function: classification cannot fail.
func Assemble(in Input) *AnalysisProfile {
	sig := ExtractSignals(in.Files, in.Dependencies, in.Languages, in.Readme)

	capabilities := ClassifyCapabilities(sig)

	purpose := in.Description
	if purpose == "" {
		purpose = "No description provided."
	}

	return &AnalysisProfile{
		Owner:        in.Identity.Owner,
		Repo:         in.Identity.Name,
		URL:          in.URL,
		Purpose:      purpose,
		TechStack:    ClassifyTechStack(sig),
		Architecture: ClassifyArchitecture(sig),
		Languages:    sig.Languages,
		Capabilities: capabilities,
		SuperPowers:  DeriveSuperPowers(capabilities),
		Dependencies: sig.Dependencies,
		EntryPoints:  DetectEntryPoints(sig.FileList),
		Gotchas:      DetectGotchas(sig.Readme, sig.Dependencies),
		AnalyzedAt:   in.AnalyzedAt,
	}
}
