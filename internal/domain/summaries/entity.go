package summaries

import "time"

// SummaryID identifier type
type SummaryID string

// Summary is an AI-written narrative of one capability profile, stored for
// auditing and retrieval.
type Summary struct {
	ID        SummaryID `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ProfileID string    `json:"profile_id"`
	Narrative string    `json:"narrative"`
	CreatedAt time.Time `json:"created_at"`
}
