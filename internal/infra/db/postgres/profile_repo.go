package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	domain "github.com/repolens/repolens/internal/domain/analysis"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `
id, tenant_id, owner, repo, url, purpose, architecture,
tech_stack, languages, capabilities, super_powers,
dependencies, entry_points, gotchas,
dependency_count, super_power_count, analyzed_at`

// Save inserts or replaces one profile row
func (r *ProfileRepository) Save(ctx context.Context, p *domain.AnalysisProfile) error {
	const q = `
INSERT INTO capability_profiles
(id, tenant_id, owner, repo, url, purpose, architecture,
 tech_stack, languages, capabilities, super_powers,
 dependencies, entry_points, gotchas,
 dependency_count, super_power_count, analyzed_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
ON CONFLICT (id) DO UPDATE SET
 purpose=EXCLUDED.purpose, architecture=EXCLUDED.architecture,
 tech_stack=EXCLUDED.tech_stack, languages=EXCLUDED.languages,
 capabilities=EXCLUDED.capabilities, super_powers=EXCLUDED.super_powers,
 dependencies=EXCLUDED.dependencies, entry_points=EXCLUDED.entry_points,
 gotchas=EXCLUDED.gotchas,
 dependency_count=EXCLUDED.dependency_count, super_power_count=EXCLUDED.super_power_count,
 analyzed_at=EXCLUDED.analyzed_at;
`
	analyzed := p.AnalyzedAt
	if analyzed.IsZero() {
		analyzed = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		p.ID, stringOrDash(p.TenantID), stringOrDash(p.Owner), stringOrDash(p.Repo),
		p.URL, p.Purpose, p.Architecture,
		jsonText(p.TechStack), jsonText(p.Languages), jsonText(p.Capabilities), jsonText(p.SuperPowers),
		jsonText(p.Dependencies), jsonText(p.EntryPoints), jsonText(p.Gotchas),
		len(p.Dependencies), len(p.SuperPowers), analyzed,
	)
	return err
}

// Get by ID + Tenant
func (r *ProfileRepository) Get(ctx context.Context, tenant string, id domain.ProfileID) (*domain.AnalysisProfile, error) {
	q := `SELECT ` + profileColumns + `
FROM capability_profiles
WHERE tenant_id=$1 AND id=$2 LIMIT 1;`
	return scanProfile(r.db.QueryRowContext(ctx, q, tenant, id))
}

// Latest profiles per tenant
func (r *ProfileRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.AnalysisProfile, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT ` + profileColumns + `
FROM capability_profiles
WHERE tenant_id=$1 ORDER BY analyzed_at DESC LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, tenant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AnalysisProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Paginate with offset + limit (classic pagination)
func (r *ProfileRepository) Paginate(ctx context.Context, tenant string, page, pageSize int, filters map[string]interface{}) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + profileColumns + `
FROM capability_profiles
WHERE tenant_id=$1`
	args := []interface{}{tenant}
	query, args = applyFilters(query, args, filters)
	args = append(args, pageSize, offset)
	query += fmt.Sprintf("\nORDER BY analyzed_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.PaginatedResult{}, err
	}
	defer rows.Close()

	var profiles []*domain.AnalysisProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return domain.PaginatedResult{}, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return domain.PaginatedResult{}, err
	}

	total, err := r.Count(ctx, tenant, filters)
	if err != nil {
		return domain.PaginatedResult{}, err
	}
	return domain.PaginatedResult{
		Data:       profiles,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Count returns the total number of records matching the given filters
func (r *ProfileRepository) Count(ctx context.Context, tenant string, filters map[string]interface{}) (int64, error) {
	query := "SELECT COUNT(*) FROM capability_profiles WHERE tenant_id=$1"
	args := []interface{}{tenant}
	query, args = applyFilters(query, args, filters)

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilters appends filter predicates with sequential placeholders;
// placeholder numbers continue from the args already collected.
func applyFilters(query string, args []interface{}, filters map[string]interface{}) (string, []interface{}) {
	if filters == nil {
		return query, args
	}
	for key, value := range filters {
		switch key {
		case "owner":
			args = append(args, value)
			query += fmt.Sprintf(" AND owner = $%d", len(args))
		case "repo":
			// LIKE with escaped wildcards
			term, _ := value.(string)
			args = append(args, "%"+escapeLikePattern(term)+"%")
			query += fmt.Sprintf(" AND repo LIKE $%d", len(args))
		case "architecture":
			args = append(args, value)
			query += fmt.Sprintf(" AND architecture = $%d", len(args))
		}
	}
	return query, args
}

// Summary aggregates analyses since N days
func (r *ProfileRepository) Summary(ctx context.Context, tenant string, sinceDays int) (domain.ProfileSummary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)

	const q = `
SELECT COUNT(*),
       COALESCE(SUM(CASE WHEN super_power_count > 0 THEN 1 ELSE 0 END),0),
       COALESCE(AVG(dependency_count),0)
FROM capability_profiles
WHERE tenant_id=$1 AND analyzed_at >= $2;
`
	var s domain.ProfileSummary
	if err := r.db.QueryRowContext(ctx, q, tenant, cut).Scan(&s.TotalAnalyses, &s.WithSuperPowers, &s.AvgDependencies); err != nil {
		return domain.ProfileSummary{}, err
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.AnalysisProfile, error) {
	var (
		p                                          domain.AnalysisProfile
		techStack, languages, capabilities         string
		superPowers, dependencies, entries, gotcha string
		depCount, powerCount                       int
	)
	if err := row.Scan(
		&p.ID, &p.TenantID, &p.Owner, &p.Repo, &p.URL, &p.Purpose, &p.Architecture,
		&techStack, &languages, &capabilities, &superPowers,
		&dependencies, &entries, &gotcha,
		&depCount, &powerCount, &p.AnalyzedAt,
	); err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(techStack), &p.TechStack)
	_ = json.Unmarshal([]byte(languages), &p.Languages)
	_ = json.Unmarshal([]byte(capabilities), &p.Capabilities)
	_ = json.Unmarshal([]byte(superPowers), &p.SuperPowers)
	_ = json.Unmarshal([]byte(dependencies), &p.Dependencies)
	_ = json.Unmarshal([]byte(entries), &p.EntryPoints)
	_ = json.Unmarshal([]byte(gotcha), &p.Gotchas)
	return &p, nil
}
