package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/repolens/repolens/internal/domain/summaries"
)

type SummaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Save inserts or updates a summary record
func (r *SummaryRepository) Save(ctx context.Context, s *domain.Summary) error {
	const q = `
INSERT INTO profile_summaries
  (id, tenant_id, profile_id, narrative, created_at)
VALUES (?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  narrative=VALUES(narrative);
`
	narrative := s.Narrative
	if strings.TrimSpace(narrative) == "" {
		narrative = "-"
	}
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, s.ID, stringOrDash(s.TenantID), s.ProfileID, narrative, createdAt)
	return err
}

// Paginate returns a page of summaries ordered by created_at desc
func (r *SummaryRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Summary, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, tenant_id, profile_id, narrative, created_at
FROM profile_summaries
WHERE tenant_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Summary
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.TenantID, &s.ProfileID, &s.Narrative, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// LatestByProfile returns the most recent summary for one profile
func (r *SummaryRepository) LatestByProfile(ctx context.Context, tenant string, profileID string) (*domain.Summary, error) {
	const q = `
SELECT id, tenant_id, profile_id, narrative, created_at
FROM profile_summaries
WHERE tenant_id=? AND profile_id=?
ORDER BY created_at DESC
LIMIT 1;
`
	var s domain.Summary
	if err := r.db.QueryRowContext(ctx, q, tenant, profileID).Scan(&s.ID, &s.TenantID, &s.ProfileID, &s.Narrative, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
