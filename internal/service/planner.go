package service

import (
	"context"

	"github.com/phrazzld/scry-planner/internal/backup"
	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/phrazzld/scry-planner/internal/domain/srs"
	"github.com/phrazzld/scry-planner/internal/store"
)

// CreateTaskInput holds the fields of a new task as entered by the learner.
type CreateTaskInput struct {
	Title string
	Year  int
	Month int
	Day   int
	// Kind is a task kind identifier or label; empty means study.
	Kind string
}

// Summary is the dashboard overview of the planner.
type Summary struct {
	TotalTasks     int       `json:"totalTasks"`
	CompletedTasks int       `json:"completedTasks"`
	StudyTasks     int       `json:"studyTasks"`
	ReviewStats    srs.Stats `json:"reviewStats"`
}

// PlannerService defines the use cases of the study planner.
//
// Errors:
//   - a *domain.ValidationError for bad input (empty title, invalid date,
//     unknown kind, postpone days below 1)
//   - store.ErrTaskNotFound when the task ID does not exist
//   - srs.ErrReviewNotFound or srs.ErrNotStudyTask for review operations on
//     tasks without the requested review
//   - domain.ErrConfiguration when settings fail validation
//   - store.ErrStoreFailure when the store cannot read or write
type PlannerService interface {
	// Today returns the current Solar Hijri date in the planner's time zone.
	Today() calendar.Date

	CreateTask(ctx context.Context, input CreateTaskInput) (domain.StudyTask, error)
	ListTasks(ctx context.Context) ([]domain.StudyTask, error)
	GetTask(ctx context.Context, id string) (domain.StudyTask, error)
	// TasksForDate returns tasks anchored on date or with a review due on it.
	TasksForDate(ctx context.Context, date calendar.Date) ([]domain.StudyTask, error)
	TodayTasks(ctx context.Context) ([]domain.StudyTask, error)
	RenameTask(ctx context.Context, id, title string) (domain.StudyTask, error)
	SetTaskCompleted(ctx context.Context, id string, completed bool) (domain.StudyTask, error)
	DeleteTask(ctx context.Context, id string) error

	DueReviews(ctx context.Context, date calendar.Date) ([]srs.DueReview, error)
	TodayReviews(ctx context.Context) ([]srs.DueReview, error)
	OverdueReviews(ctx context.Context) ([]srs.DueReview, error)
	Exams(ctx context.Context) ([]srs.DueReview, error)
	CompleteReview(ctx context.Context, id string, kind domain.ReviewKind) (domain.StudyTask, error)
	ReopenReview(ctx context.Context, id string, kind domain.ReviewKind) (domain.StudyTask, error)
	PostponeReview(ctx context.Context, id string, kind domain.ReviewKind, days int) (domain.StudyTask, error)

	ReviewStats(ctx context.Context) (srs.Stats, error)
	Summary(ctx context.Context) (Summary, error)

	Settings(ctx context.Context) (domain.Settings, error)
	// UpdateSettings validates and saves settings. Existing review
	// schedules keep their due dates; new intervals apply to new tasks.
	UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error)

	Export(ctx context.Context) (backup.Document, error)
	// Import replaces every task and, when the document carries them, the
	// settings. Nothing is written if the settings are invalid, and a failed
	// task write puts the previous settings back.
	Import(ctx context.Context, doc backup.Document) error
	// ClearAll removes every task and resets the settings.
	ClearAll(ctx context.Context) error
	StorageInfo(ctx context.Context) (store.StorageInfo, error)
}
