package integration

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/domain/integration"
)

// SyncStatusResponse reports the state of the sync coordinator
type SyncStatusResponse struct {
	Locked        bool                       `json:"locked"`
	LastRunAt     *time.Time                 `json:"last_run_at,omitempty"`
	LastTrigger   string                     `json:"last_trigger,omitempty"`
	LastResult    *integration.SyncAllResult `json:"last_result,omitempty"`
	SkippedTicks  int64                      `json:"skipped_ticks"`
	CompletedRuns int64                      `json:"completed_runs"`
}

// Sync trigger names used in logs and status
const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

// AnswerQuestionRequest is the body of an answer to a customer question
type AnswerQuestionRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// StoreResponse is the public view of a store; credentials are never exposed
type StoreResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	IsActive       bool      `json:"is_active"`
	HasCredentials bool      `json:"has_credentials"`
	UsesProxy      bool      `json:"uses_proxy"`
}

// ToStoreResponse converts a store to its public view
func ToStoreResponse(s *integration.Store) StoreResponse {
	return StoreResponse{
		ID:             s.ID,
		Name:           s.Name,
		IsActive:       s.IsActive,
		HasCredentials: s.Credentials.IsComplete(),
		UsesProxy:      s.HasProxy(),
	}
}
