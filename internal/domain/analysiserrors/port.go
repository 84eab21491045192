package analysiserrors

import "context"

// Repository defines persistence for analysis errors
type Repository interface {
	Save(ctx context.Context, e *AnalysisError) error
	ListByLocator(ctx context.Context, tenant string, locator string, limit int) ([]*AnalysisError, error)
}
