package mysql

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

// Save insert/update profile record. Profiles are immutable; a re-analysis
// of the same id overwrites the whole row.
func (r *ProfileRepository) Save(ctx context.Context, p *domain.AnalysisProfile) error {
	const q = `
INSERT INTO capability_profiles
(id, tenant_id, owner, repo, url, purpose, architecture,
 tech_stack, languages, capabilities, super_powers,
 dependencies, entry_points, gotchas,
 dependency_count, super_power_count, analyzed_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 purpose=VALUES(purpose), architecture=VALUES(architecture),
 tech_stack=VALUES(tech_stack), languages=VALUES(languages),
 capabilities=VALUES(capabilities), super_powers=VALUES(super_powers),
 dependencies=VALUES(dependencies), entry_points=VALUES(entry_points),
 gotchas=VALUES(gotchas),
 dependency_count=VALUES(dependency_count), super_power_count=VALUES(super_power_count),
 analyzed_at=VALUES(analyzed_at);
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
WHERE tenant_id=? AND id=? LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, tenant, id)
	return scanProfile(row)
}

// Latest profiles per tenant
func (r *ProfileRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.AnalysisProfile, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT ` + profileColumns + `
FROM capability_profiles
WHERE tenant_id=? ORDER BY analyzed_at DESC LIMIT ?;`
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
WHERE tenant_id=?`
	args := []interface{}{tenant}
	query, args = applyFilters(query, args, filters)
	query += "\nORDER BY analyzed_at DESC LIMIT ? OFFSET ?"
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.AnalysisProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return domain.PaginatedResult{}, fmt.Errorf("scanning row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("iterating rows: %w", err)
	}

	total, err := r.Count(ctx, tenant, filters)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
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
	query := "SELECT COUNT(*) FROM capability_profiles WHERE tenant_id = ?"
	args := []interface{}{tenant}
	query, args = applyFilters(query, args, filters)

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Summary aggregates analyses since N days
func (r *ProfileRepository) Summary(ctx context.Context, tenant string, sinceDays int) (domain.ProfileSummary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)

	const q = `
SELECT COUNT(*) AS total,
       COALESCE(SUM(super_power_count > 0),0) AS with_powers,
       COALESCE(AVG(dependency_count),0)      AS avg_deps
FROM capability_profiles
WHERE tenant_id=? AND analyzed_at >= ?;
`
	var s domain.ProfileSummary
	if err := r.db.QueryRowContext(ctx, q, tenant, cut).Scan(&s.TotalAnalyses, &s.WithSuperPowers, &s.AvgDependencies); err != nil {
		return domain.ProfileSummary{}, err
	}
	return s, nil
}

func applyFilters(query string, args []interface{}, filters map[string]interface{}) (string, []interface{}) {
	if filters == nil {
		return query, args
	}
	for key, value := range filters {
		switch key {
		case "owner":
			query += " AND owner = ?"
			args = append(args, value)
		case "repo":
			// LIKE with escaped wildcards
			query += " AND repo LIKE ?"
			term, _ := value.(string)
			args = append(args, "%"+escapeLikePattern(term)+"%")
		case "architecture":
			query += " AND architecture = ?"
			args = append(args, value)
		}
	}
	return query, args
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
	// Tolerate legacy rows with malformed JSON columns: leave the field empty.
	_ = json.Unmarshal([]byte(techStack), &p.TechStack)
	_ = json.Unmarshal([]byte(languages), &p.Languages)
	_ = json.Unmarshal([]byte(capabilities), &p.Capabilities)
	_ = json.Unmarshal([]byte(superPowers), &p.SuperPowers)
	_ = json.Unmarshal([]byte(dependencies), &p.Dependencies)
	_ = json.Unmarshal([]byte(entries), &p.EntryPoints)
	_ = json.Unmarshal([]byte(gotcha), &p.Gotchas)
	return &p, nil
}
