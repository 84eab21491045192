package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/repolens/repolens/internal/domain/analysiserrors"
)

type AnalysisErrorRepository struct {
	db *sql.DB
}

func NewAnalysisErrorRepository(db *sql.DB) *AnalysisErrorRepository {
	return &AnalysisErrorRepository{db: db}
}

// Save inserts one failed-analysis record
func (r *AnalysisErrorRepository) Save(ctx context.Context, e *domain.AnalysisError) error {
	const q = `
INSERT INTO analysis_errors (tenant_id, locator, phase, message, created_at)
VALUES ($1,$2,$3,$4,$5);
`
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, stringOrDash(e.TenantID), e.Locator, e.Phase, e.Message, createdAt)
	return err
}

// ListByLocator returns recent failures for one locator
func (r *AnalysisErrorRepository) ListByLocator(ctx context.Context, tenant string, locator string, limit int) ([]*domain.AnalysisError, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, locator, phase, message, created_at
FROM analysis_errors
WHERE tenant_id=$1 AND locator=$2
ORDER BY created_at DESC
LIMIT $3;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, locator, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AnalysisError
	for rows.Next() {
		var e domain.AnalysisError
		if err := rows.Scan(&e.ID, &e.TenantID, &e.Locator, &e.Phase, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
