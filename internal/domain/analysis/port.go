package analysis

import "context"

// Provider port (interface untuk repository data acquisition)
//
// FetchMetadata errors are fatal to an analysis. Every other fetch is
// best-effort: implementations return the zero value on provider errors and
// the caller substitutes empty defaults.
type Provider interface {
	ResolveIdentity(locator string) (Identity, error)
	FetchMetadata(ctx context.Context, owner, name string) (Metadata, error)
	FetchLanguages(ctx context.Context, owner, name string) (map[string]int64, error)
	FetchFileTree(ctx context.Context, owner, name string) ([]string, error)
	FetchReadme(ctx context.Context, owner, name string) (string, error)
	// FetchFileContent returns ok=false when the file is absent or unreadable.
	FetchFileContent(ctx context.Context, owner, name, path string) (content string, ok bool)
}

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, p *AnalysisProfile) error
	Get(ctx context.Context, tenant string, id ProfileID) (*AnalysisProfile, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*AnalysisProfile, error)
	Paginate(ctx context.Context, tenant string, page, pageSize int, filters map[string]interface{}) (PaginatedResult, error)
	Count(ctx context.Context, tenant string, filters map[string]interface{}) (int64, error)
	Summary(ctx context.Context, tenant string, sinceDays int) (ProfileSummary, error)
}

// ReportStore port (interface untuk penyimpanan rendered reports)
type ReportStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ProfileSummary aggregates recent analyses for a tenant.
type ProfileSummary struct {
	TotalAnalyses   int     `json:"total_analyses"`
	WithSuperPowers int     `json:"with_super_powers"`
	AvgDependencies float64 `json:"avg_dependencies"`
}
