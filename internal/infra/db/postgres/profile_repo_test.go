package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/repolens/repolens/internal/domain/analysis"
	"github.com/repolens/repolens/internal/domain/analysiserrors"
	"github.com/repolens/repolens/internal/domain/summaries"
)

var (
	_ domain.Repository         = (*ProfileRepository)(nil)
	_ summaries.Repository      = (*SummaryRepository)(nil)
	_ analysiserrors.Repository = (*AnalysisErrorRepository)(nil)
)

func TestApplyFiltersRepoLike(t *testing.T) {
	query, args := applyFilters(
		"SELECT COUNT(*) FROM capability_profiles WHERE tenant_id=$1",
		[]interface{}{"tenant-a"},
		map[string]interface{}{"repo": "len_s%"},
	)

	assert.Equal(t,
		"SELECT COUNT(*) FROM capability_profiles WHERE tenant_id=$1 AND repo LIKE $2",
		query)
	require.Len(t, args, 2)
	// wildcards in the term are escaped, the surrounding ones are ours
	assert.Equal(t, "%len\\_s\\%%", args[1])
}

func TestApplyFiltersArchitectureEquality(t *testing.T) {
	query, args := applyFilters(
		"WHERE tenant_id=$1",
		[]interface{}{"tenant-a"},
		map[string]interface{}{"architecture": domain.ArchStandard},
	)

	assert.Equal(t, "WHERE tenant_id=$1 AND architecture = $2", query)
	require.Len(t, args, 2)
	assert.Equal(t, domain.ArchStandard, args[1])
}

func TestApplyFiltersPlaceholdersStaySequential(t *testing.T) {
	query, args := applyFilters(
		"WHERE tenant_id=$1",
		[]interface{}{"tenant-a"},
		map[string]interface{}{"repo": "lens", "architecture": domain.ArchAPIDriven},
	)

	// map order varies, but every predicate must be present and each
	// placeholder number must match the arg it was appended with
	assert.Contains(t, query, "repo LIKE $")
	assert.Contains(t, query, "architecture = $")
	require.Len(t, args, 3)
	assert.Contains(t, args, "%lens%")
	assert.Contains(t, args, domain.ArchAPIDriven)
}

func TestApplyFiltersNilAndUnknownKeys(t *testing.T) {
	base := "WHERE tenant_id=$1"
	baseArgs := []interface{}{"tenant-a"}

	query, args := applyFilters(base, baseArgs, nil)
	assert.Equal(t, base, query)
	assert.Len(t, args, 1)

	query, args = applyFilters(base, baseArgs, map[string]interface{}{"purpose": "x"})
	assert.Equal(t, base, query)
	assert.Len(t, args, 1)
}

func TestEscapeLikePattern(t *testing.T) {
	assert.Equal(t, "plain", escapeLikePattern("plain"))
	assert.Equal(t, "a\\%b", escapeLikePattern("a%b"))
	assert.Equal(t, "a\\_b", escapeLikePattern("a_b"))
	assert.Equal(t, "a\\\\b", escapeLikePattern("a\\b"))
}
