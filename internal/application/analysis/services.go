package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/repolens/repolens/internal/application"
	domain "github.com/repolens/repolens/internal/domain/analysis"
	"github.com/repolens/repolens/internal/domain/analysiserrors"
	"github.com/repolens/repolens/internal/render"
)

// Service implements the analysis use-cases. Safe for concurrent use: every
// analysis owns its own data and the collaborators are stateless ports.
type Service struct {
	Provider domain.Provider
	Repo     domain.Repository
	Reports  domain.ReportStore
	Errors   analysiserrors.Repository // optional; nil disables error journaling
	Clock    application.Clock
}

// Command to run one analysis.
type AnalyzeCommand struct {
	TenantID string
	Locator  string
}

// rawSignals collects the provider payloads joined before assembly.
type rawSignals struct {
	meta      domain.Metadata
	languages map[string]int64
	files     []string
	readme    string
}

// Inspect is the library entry point: resolve the locator, fetch raw
// signals, assemble the profile. No persistence involved. Only identity
// resolution and the metadata fetch can fail; every other signal degrades
// to an empty default.
func Inspect(ctx context.Context, provider domain.Provider, locator string, now time.Time) (*domain.AnalysisProfile, error) {
	identity, err := provider.ResolveIdentity(locator)
	if err != nil {
		return nil, err
	}

	raw, err := fetchSignals(ctx, provider, identity)
	if err != nil {
		return nil, err
	}

	deps := fetchDependencies(ctx, provider, identity, raw.files)

	return domain.Assemble(domain.Input{
		Identity:     identity,
		URL:          fmt.Sprintf("https://github.com/%s/%s", identity.Owner, identity.Name),
		Description:  raw.meta.Description,
		Files:        raw.files,
		Dependencies: deps,
		Languages:    raw.languages,
		Readme:       raw.readme,
		AnalyzedAt:   now,
	}), nil
}

// Analyze runs Inspect and persists the resulting profile for the tenant.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.AnalysisProfile, error) {
	profile, err := Inspect(ctx, s.Provider, cmd.Locator, s.Clock.Now())
	if err != nil {
		phase := "fetch"
		if errors.Is(err, domain.ErrInvalidLocator) {
			phase = "resolve"
		}
		s.journal(cmd, phase, err)
		return nil, err
	}
	profile.ID = domain.ProfileID(uuid.New().String())
	profile.TenantID = cmd.TenantID

	if err := s.Repo.Save(ctx, profile); err != nil {
		s.journal(cmd, "persist", err)
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	return profile, nil
}

// fetchSignals issues the four independent provider fetches concurrently and
// joins them. The metadata error is the only fatal one; languages, tree, and
// README substitute empty defaults on failure.
func fetchSignals(ctx context.Context, provider domain.Provider, id domain.Identity) (rawSignals, error) {
	var (
		raw     rawSignals
		metaErr error
		wg      sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		raw.meta, metaErr = provider.FetchMetadata(ctx, id.Owner, id.Name)
	}()
	go func() {
		defer wg.Done()
		langs, err := provider.FetchLanguages(ctx, id.Owner, id.Name)
		if err != nil {
			langs = map[string]int64{}
		}
		raw.languages = langs
	}()
	go func() {
		defer wg.Done()
		files, err := provider.FetchFileTree(ctx, id.Owner, id.Name)
		if err != nil {
			files = nil
		}
		raw.files = files
	}()
	go func() {
		defer wg.Done()
		readme, err := provider.FetchReadme(ctx, id.Owner, id.Name)
		if err != nil {
			readme = ""
		}
		raw.readme = readme
	}()
	wg.Wait()

	if metaErr != nil {
		return rawSignals{}, metaErr
	}
	return raw, nil
}

// fetchDependencies pulls the manifest once the tree confirms it exists.
// Absent or malformed manifests mean "no dependencies declared".
func fetchDependencies(ctx context.Context, provider domain.Provider, id domain.Identity, files []string) []domain.Dependency {
	found := false
	for _, f := range files {
		if f == domain.ManifestPath {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	content, ok := provider.FetchFileContent(ctx, id.Owner, id.Name, domain.ManifestPath)
	if !ok {
		return nil
	}
	return domain.ParseManifest(content)
}

// Get fetches one profile by id.
func (s *Service) Get(ctx context.Context, tenant string, id domain.ProfileID) (*domain.AnalysisProfile, error) {
	return s.Repo.Get(ctx, tenant, id)
}

// Latest fetches the N most recent profiles.
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*domain.AnalysisProfile, error) {
	return s.Repo.Latest(ctx, tenant, limit)
}

// Paginate lists profiles with offset pagination and optional filters.
func (s *Service) Paginate(ctx context.Context, tenant string, page, pageSize int, filters map[string]interface{}) (domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, tenant, page, pageSize, filters)
}

// Summary aggregates analysis stats for the last N days.
func (s *Service) Summary(ctx context.Context, tenant string, sinceDays int) (domain.ProfileSummary, error) {
	return s.Repo.Summary(ctx, tenant, sinceDays)
}

// ReportResult is the outcome of rendering and uploading one report.
type ReportResult struct {
	ProfileID string `json:"profile_id"`
	URL       string `json:"url"`
	Markdown  string `json:"markdown"`
}

// Report renders the profile as markdown and uploads it to the report store.
func (s *Service) Report(ctx context.Context, tenant string, id domain.ProfileID) (ReportResult, error) {
	profile, err := s.Repo.Get(ctx, tenant, id)
	if err != nil {
		return ReportResult{}, err
	}

	md := render.Markdown(profile)
	key := fmt.Sprintf("%s/%s-%s/%s.md", tenant, profile.Owner, profile.Repo, profile.ID)
	url, err := s.Reports.UploadBytes(ctx, key, []byte(md), "text/markdown")
	if err != nil {
		return ReportResult{}, fmt.Errorf("uploading report: %w", err)
	}
	return ReportResult{ProfileID: string(id), URL: url, Markdown: md}, nil
}

// Failures returns recent journaled failures for one locator. An empty list
// when journaling is disabled.
func (s *Service) Failures(ctx context.Context, tenant, locator string, limit int) ([]*analysiserrors.AnalysisError, error) {
	if s.Errors == nil {
		return nil, nil
	}
	return s.Errors.ListByLocator(ctx, tenant, locator, limit)
}

// journal persists a failed-analysis record, best effort.
func (s *Service) journal(cmd AnalyzeCommand, phase string, cause error) {
	if s.Errors == nil {
		return
	}
	e := &analysiserrors.AnalysisError{
		TenantID:  cmd.TenantID,
		Locator:   cmd.Locator,
		Phase:     phase,
		Message:   cause.Error(),
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Errors.Save(context.Background(), e); err != nil {
		log.Printf("journal analysis error: %v", err)
	}
}
