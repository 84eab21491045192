package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	domai "github.com/repolens/repolens/internal/domain/ai"
	domain "github.com/repolens/repolens/internal/domain/analysis"
	"github.com/repolens/repolens/internal/domain/summaries"
)

// Service turns capability profiles into AI-written narratives and stores
// them per tenant.
type Service struct {
	client   domai.Client
	profiles domain.Repository
	repo     summaries.Repository
}

func NewService(client domai.Client, profiles domain.Repository, repo summaries.Repository) *Service {
	return &Service{client: client, profiles: profiles, repo: repo}
}

// SummarizeAndStore looks up the profile, asks the AI client for a narrative,
// and persists the result.
func (s *Service) SummarizeAndStore(ctx context.Context, tenant string, profileID domain.ProfileID) (*summaries.Summary, error) {
	profile, err := s.profiles.Get(ctx, tenant, profileID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}

	narrative, err := s.client.Summarize(ctx, string(payload))
	if err != nil {
		return nil, err
	}

	sum := &summaries.Summary{
		ID:        summaries.SummaryID(uuid.New().String()),
		TenantID:  tenant,
		ProfileID: string(profileID),
		Narrative: narrative,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, sum); err != nil {
		return nil, err
	}
	return sum, nil
}

// ListSummaries returns a page of stored narratives.
func (s *Service) ListSummaries(ctx context.Context, tenant string, page, pageSize int) ([]*summaries.Summary, error) {
	return s.repo.Paginate(ctx, tenant, page, pageSize)
}

// LatestSummary returns the most recent narrative for one profile.
func (s *Service) LatestSummary(ctx context.Context, tenant string, profileID domain.ProfileID) (*summaries.Summary, error) {
	return s.repo.LatestByProfile(ctx, tenant, string(profileID))
}
