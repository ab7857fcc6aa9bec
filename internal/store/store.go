// Package store persists extraction run history. The extraction core itself is
// stateless; this only serves the CLI and the webhook server.
package store

import (
	"context"
	"time"

	"github.com/sells-group/earnings-cli/internal/summary"
)

// RunStatus tracks an extraction run's lifecycle.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded extraction attempt over a single transcript.
type Run struct {
	ID         string                   `json:"id"`
	Source     string                   `json:"source"`
	Status     RunStatus                `json:"status"`
	Summary    *summary.EarningsSummary `json:"summary,omitempty"`
	Error      string                   `json:"error,omitempty"`
	DurationMS int64                    `json:"duration_ms"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status RunStatus `json:"status,omitempty"`
	Limit  int       `json:"limit,omitempty"`
}

// Store defines the run-history persistence interface.
type Store interface {
	CreateRun(ctx context.Context, source string) (*Run, error)
	CompleteRun(ctx context.Context, runID string, s *summary.EarningsSummary, duration time.Duration) error
	FailRun(ctx context.Context, runID string, cause error, duration time.Duration) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
