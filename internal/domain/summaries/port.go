package summaries

import "context"

// Repository port for persisting and querying AI summaries
type Repository interface {
	Save(ctx context.Context, s *Summary) error
	Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*Summary, error)
	LatestByProfile(ctx context.Context, tenant string, profileID string) (*Summary, error)
}
