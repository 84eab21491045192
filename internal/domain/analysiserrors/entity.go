package analysiserrors

import "time"

// AnalysisError represents a persisted failed-analysis entry
type AnalysisError struct {
	ID        int64     `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Locator   string    `json:"locator"`
	Phase     string    `json:"phase,omitempty"` // resolve | fetch | persist
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
