package analysis

import (
	"time"
)

// ID tipe untuk Profile
type ProfileID string

// DependencyKind enum
type DependencyKind string

const (
	KindProduction  DependencyKind = "production"
	KindDevelopment DependencyKind = "development"
)

// Dependency is one declared manifest entry, unique by (name, kind).
// Order follows declaration order in the manifest.
type Dependency struct {
	Name    string         `json:"name"`
	Version string         `json:"version"`
	Kind    DependencyKind `json:"kind"`
}

// CapabilityCategory describes one detected functional ability.
// Produced by the capability classifier, never mutated afterwards.
type CapabilityCategory struct {
	Name      string   `json:"name"`
	Rationale string   `json:"rationale"`
	UseCases  []string `json:"use_cases"`
	Example   string   `json:"example"`
}

// SuperPower is an emergent label derived from co-occurring capability domains.
type SuperPower struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Identity of the analyzed repository.
type Identity struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// Metadata returned by the mandatory provider fetch.
type Metadata struct {
	Description string `json:"description"`
	CloneURL    string `json:"clone_url"`
}

// Aggregate Root: AnalysisProfile
// Immutable once assembled; each analysis owns its own instance.
type AnalysisProfile struct {
	ID           ProfileID            `json:"id"`
	TenantID     string               `json:"tenant_id"`
	Owner        string               `json:"owner"`
	Repo         string               `json:"repo"`
	URL          string               `json:"url"`
	Purpose      string               `json:"purpose"`
	TechStack    []string             `json:"tech_stack"`
	Architecture string               `json:"architecture"`
	Languages    map[string]int64     `json:"languages"`
	Capabilities []CapabilityCategory `json:"capabilities"`
	SuperPowers  []SuperPower         `json:"super_powers"`
	Dependencies []Dependency         `json:"dependencies"`
	EntryPoints  []string             `json:"entry_points"`
	Gotchas      []string             `json:"gotchas"`
	AnalyzedAt   time.Time            `json:"analyzed_at"`
}
