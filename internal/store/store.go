package store

import (
	"context"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
)

// TaskStore is the whole-collection contract for study tasks. GetTasks
// returns a snapshot the caller owns; SaveTasks replaces the stored
// collection with tasks, preserving their order.
type TaskStore interface {
	GetTasks(ctx context.Context) ([]domain.StudyTask, error)
	SaveTasks(ctx context.Context, tasks []domain.StudyTask) error
}

// SettingsStore persists the learner's settings. GetSettings returns
// domain.DefaultSettings when nothing has been saved yet.
type SettingsStore interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// StorageInfo describes the stored task collection.
type StorageInfo struct {
	TotalTasks int        `json:"totalTasks"`
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
}

// InfoProvider is implemented by stores that can report when the task
// collection was last written.
type InfoProvider interface {
	Info(ctx context.Context) (StorageInfo, error)
}

// Clearer is implemented by stores that can remove all stored data at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
