// Package store persists run history for region processing, with sqlite and
// postgres backends.
package store

import (
	"context"

	"github.com/ridgeline-data/propmail/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Region string          `json:"region,omitempty"`
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for run history.
type Store interface {
	CreateRun(ctx context.Context, region, fips string) (*model.LinkageRun, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	CompleteRun(ctx context.Context, run *model.LinkageRun) error
	GetRun(ctx context.Context, runID string) (*model.LinkageRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.LinkageRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
