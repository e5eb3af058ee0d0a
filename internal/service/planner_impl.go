package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/scry-planner/internal/backup"
	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/phrazzld/scry-planner/internal/domain/srs"
	"github.com/phrazzld/scry-planner/internal/platform/logger"
	"github.com/phrazzld/scry-planner/internal/store"
)

// Verify interface compliance at compile time
var _ PlannerService = (*plannerServiceImpl)(nil)

// plannerServiceImpl implements the PlannerService interface.
type plannerServiceImpl struct {
	tasks      store.TaskStore
	settings   store.SettingsStore
	srsService srs.Service
	clock      func() time.Time
	location   *time.Location
	logger     *slog.Logger
}

// NewPlannerService creates a new PlannerService implementation. A nil
// clock means time.Now and a nil location means UTC.
func NewPlannerService(
	tasks store.TaskStore,
	settings store.SettingsStore,
	srsService srs.Service,
	clock func() time.Time,
	location *time.Location,
	logger *slog.Logger,
) PlannerService {
	if tasks == nil {
		panic("tasks store cannot be nil")
	}
	if settings == nil {
		panic("settings store cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &plannerServiceImpl{
		tasks:      tasks,
		settings:   settings,
		srsService: srsService,
		clock:      clock,
		location:   location,
		logger:     logger.With(slog.String("component", "planner_service")),
	}
}

// Today implements PlannerService.Today.
func (s *plannerServiceImpl) Today() calendar.Date {
	return calendar.Today(s.clock(), s.location)
}

// CreateTask implements PlannerService.CreateTask.
func (s *plannerServiceImpl) CreateTask(
	ctx context.Context,
	input CreateTaskInput,
) (domain.StudyTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !calendar.IsValidDate(input.Year, input.Month, input.Day) {
		return domain.StudyTask{}, domain.NewValidationError(
			"date",
			fmt.Sprintf("%d/%02d/%02d is not a valid date", input.Year, input.Month, input.Day),
			calendar.ErrInvalidDate,
		)
	}
	anchor, _ := calendar.New(input.Year, input.Month, input.Day)

	kind := domain.TaskKindStudy
	if strings.TrimSpace(input.Kind) != "" {
		parsed, err := domain.ParseTaskKind(input.Kind)
		if err != nil {
			return domain.StudyTask{}, domain.NewValidationError("type", "is unknown", err)
		}
		kind = parsed
	}

	task, err := domain.NewStudyTask(input.Title, anchor, kind, s.clock())
	if err != nil {
		return domain.StudyTask{}, err
	}

	if task.IsStudy() {
		settings, err := s.settings.GetSettings(ctx)
		if err != nil {
			return domain.StudyTask{}, NewServiceError("create_task", err)
		}
		reviews, err := s.srsService.Schedule(anchor, settings.ReviewIntervals)
		if err != nil {
			log.Error("saved review intervals are invalid",
				slog.String("error", err.Error()))
			return domain.StudyTask{}, NewServiceError("create_task", err)
		}
		task.Reviews = reviews
	}

	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return domain.StudyTask{}, NewServiceError("create_task", err)
	}
	tasks = append(tasks, task)
	if err := s.tasks.SaveTasks(ctx, tasks); err != nil {
		log.Error("failed to save new task",
			slog.String("task_id", task.ID),
			slog.String("error", err.Error()))
		return domain.StudyTask{}, NewServiceError("create_task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID),
		slog.String("date", anchor.String()),
		slog.String("type", string(task.Kind)),
		slog.Int("reviews", len(task.Reviews)))
	return task.Clone(), nil
}

// ListTasks implements PlannerService.ListTasks.
func (s *plannerServiceImpl) ListTasks(ctx context.Context) ([]domain.StudyTask, error) {
	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return nil, NewServiceError("list_tasks", err)
	}
	return domain.CloneTasks(tasks), nil
}

// GetTask implements PlannerService.GetTask.
func (s *plannerServiceImpl) GetTask(ctx context.Context, id string) (domain.StudyTask, error) {
	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return domain.StudyTask{}, NewServiceError("get_task", err)
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return domain.StudyTask{}, fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}
	return tasks[i].Clone(), nil
}

// TasksForDate implements PlannerService.TasksForDate.
func (s *plannerServiceImpl) TasksForDate(
	ctx context.Context,
	date calendar.Date,
) ([]domain.StudyTask, error) {
	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return nil, NewServiceError("tasks_for_date", err)
	}
	return srs.TasksForDate(tasks, date), nil
}

// TodayTasks implements PlannerService.TodayTasks.
func (s *plannerServiceImpl) TodayTasks(ctx context.Context) ([]domain.StudyTask, error) {
	return s.TasksForDate(ctx, s.Today())
}

// RenameTask implements PlannerService.RenameTask.
func (s *plannerServiceImpl) RenameTask(
	ctx context.Context,
	id, title string,
) (domain.StudyTask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.StudyTask{}, domain.NewValidationError("title", "is required", domain.ErrEmptyTitle)
	}

	return s.updateTask(ctx, "rename_task", id, func(t domain.StudyTask, now time.Time) (domain.StudyTask, error) {
		t.Title = title
		t.UpdatedAt = &now
		return t, nil
	})
}

// SetTaskCompleted implements PlannerService.SetTaskCompleted.
func (s *plannerServiceImpl) SetTaskCompleted(
	ctx context.Context,
	id string,
	completed bool,
) (domain.StudyTask, error) {
	return s.updateTask(ctx, "set_task_completed", id, func(t domain.StudyTask, now time.Time) (domain.StudyTask, error) {
		t.Completed = completed
		if completed {
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
		t.UpdatedAt = &now
		return t, nil
	})
}

// DeleteTask implements PlannerService.DeleteTask.
func (s *plannerServiceImpl) DeleteTask(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return NewServiceError("delete_task", err)
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}

	remaining := make([]domain.StudyTask, 0, len(tasks)-1)
	remaining = append(remaining, tasks[:i]...)
	remaining = append(remaining, tasks[i+1:]...)
	if err := s.tasks.SaveTasks(ctx, remaining); err != nil {
		return NewServiceError("delete_task", err)
	}

	log.Info("task deleted", slog.String("task_id", id))
	return nil
}

// DueReviews implements PlannerService.DueReviews.
func (s *plannerServiceImpl) DueReviews(ctx context.Context, date calendar.Date) ([]srs.DueReview, error) {
	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return nil, NewServiceError("due_reviews", err)
	}
	return srs.QueryByDueDate(tasks, date), nil
}

// TodayReviews implements PlannerService.TodayReviews.
func (s *plannerServiceImpl) TodayReviews(ctx context.Context) ([]srs.DueReview, error) {
	return s.DueReviews(ctx, s.Today())
}

// OverdueReviews implements PlannerService.OverdueReviews.
func (s *plannerServiceImpl) OverdueReviews(ctx context.Context) ([]srs.DueReview, error) {
	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return nil, NewServiceError("overdue_reviews", err)
	}
	return srs.OverdueReviews(tasks, s.Today()), nil
}

// Exams implements PlannerService.Exams.
func (s *plannerServiceImpl) Exams(ctx context.Context) ([]srs.DueReview, error) {
	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return nil, NewServiceError("exams", err)
	}
	return srs.ReviewsByKind(tasks, domain.ReviewExam), nil
}

// CompleteReview implements PlannerService.CompleteReview.
func (s *plannerServiceImpl) CompleteReview(
	ctx context.Context,
	id string,
	kind domain.ReviewKind,
) (domain.StudyTask, error) {
	return s.updateTask(ctx, "complete_review", id, func(t domain.StudyTask, now time.Time) (domain.StudyTask, error) {
		return s.srsService.CompleteReview(t, kind, now)
	})
}

// ReopenReview implements PlannerService.ReopenReview.
func (s *plannerServiceImpl) ReopenReview(
	ctx context.Context,
	id string,
	kind domain.ReviewKind,
) (domain.StudyTask, error) {
	return s.updateTask(ctx, "reopen_review", id, func(t domain.StudyTask, now time.Time) (domain.StudyTask, error) {
		return s.srsService.ReopenReview(t, kind, now)
	})
}

// PostponeReview implements PlannerService.PostponeReview.
func (s *plannerServiceImpl) PostponeReview(
	ctx context.Context,
	id string,
	kind domain.ReviewKind,
	days int,
) (domain.StudyTask, error) {
	if days < 1 {
		return domain.StudyTask{}, domain.NewValidationError("days", "must be at least 1", srs.ErrInvalidDays)
	}

	return s.updateTask(ctx, "postpone_review", id, func(t domain.StudyTask, now time.Time) (domain.StudyTask, error) {
		return s.srsService.PostponeReview(t, kind, days, now)
	})
}

// ReviewStats implements PlannerService.ReviewStats.
func (s *plannerServiceImpl) ReviewStats(ctx context.Context) (srs.Stats, error) {
	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return srs.Stats{}, NewServiceError("review_stats", err)
	}
	return s.srsService.Stats(tasks, s.Today()), nil
}

// Summary implements PlannerService.Summary.
func (s *plannerServiceImpl) Summary(ctx context.Context) (Summary, error) {
	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return Summary{}, NewServiceError("summary", err)
	}

	sum := Summary{
		TotalTasks:  len(tasks),
		ReviewStats: s.srsService.Stats(tasks, s.Today()),
	}
	for _, t := range tasks {
		if t.Completed {
			sum.CompletedTasks++
		}
		if t.IsStudy() {
			sum.StudyTasks++
		}
	}
	return sum, nil
}

// Settings implements PlannerService.Settings.
func (s *plannerServiceImpl) Settings(ctx context.Context) (domain.Settings, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return domain.Settings{}, NewServiceError("get_settings", err)
	}
	return settings, nil
}

// UpdateSettings implements PlannerService.UpdateSettings.
func (s *plannerServiceImpl) UpdateSettings(
	ctx context.Context,
	settings domain.Settings,
) (domain.Settings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		log.Warn("rejected settings", slog.String("error", err.Error()))
		return domain.Settings{}, err
	}
	if err := s.settings.SaveSettings(ctx, settings); err != nil {
		return domain.Settings{}, NewServiceError("update_settings", err)
	}

	log.Info("settings updated",
		slog.Int("review1", settings.ReviewIntervals.First),
		slog.Int("review2", settings.ReviewIntervals.Second),
		slog.Int("review3", settings.ReviewIntervals.Third),
		slog.Int("exam", settings.ReviewIntervals.Exam))
	return settings, nil
}

// Export implements PlannerService.Export.
func (s *plannerServiceImpl) Export(ctx context.Context) (backup.Document, error) {
	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return backup.Document{}, NewServiceError("export", err)
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return backup.Document{}, NewServiceError("export", err)
	}
	return backup.New(tasks, settings, s.clock()), nil
}

// Import implements PlannerService.Import.
func (s *plannerServiceImpl) Import(ctx context.Context, doc backup.Document) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if doc.Tasks == nil {
		return fmt.Errorf("%w: tasks are missing", backup.ErrMalformedBackup)
	}
	for i, t := range doc.Tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: task %d: %v", backup.ErrMalformedBackup, i, err)
		}
	}
	if doc.Settings != nil {
		if err := doc.Settings.Validate(); err != nil {
			return err
		}
	}

	// Settings go first so a failed settings write leaves the store untouched.
	// A failed task write restores the previous settings.
	var previous *domain.Settings
	if doc.Settings != nil {
		current, err := s.settings.GetSettings(ctx)
		if err != nil {
			return NewServiceError("import", err)
		}
		previous = &current
		if err := s.settings.SaveSettings(ctx, *doc.Settings); err != nil {
			return NewServiceError("import", err)
		}
	}

	if err := s.tasks.SaveTasks(ctx, domain.CloneTasks(doc.Tasks)); err != nil {
		if previous != nil {
			if restoreErr := s.settings.SaveSettings(ctx, *previous); restoreErr != nil {
				log.Error("failed to restore settings after import failure",
					slog.String("error", restoreErr.Error()))
			}
		}
		return NewServiceError("import", err)
	}

	log.Info("backup imported",
		slog.Int("tasks", len(doc.Tasks)),
		slog.Bool("settings", doc.Settings != nil),
		slog.String("version", doc.Version))
	return nil
}

// ClearAll implements PlannerService.ClearAll. Stores implementing
// store.Clearer are cleared in one call; others are overwritten with an
// empty collection and default settings.
func (s *plannerServiceImpl) ClearAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasksClearer, tasksCanClear := s.tasks.(store.Clearer)
	if tasksCanClear {
		if err := tasksClearer.Clear(ctx); err != nil {
			return NewServiceError("clear_all", err)
		}
	} else if err := s.tasks.SaveTasks(ctx, []domain.StudyTask{}); err != nil {
		return NewServiceError("clear_all", err)
	}

	// A single store backing both interfaces was fully cleared above
	if !tasksCanClear || any(s.tasks) != any(s.settings) {
		if c, ok := s.settings.(store.Clearer); ok {
			if err := c.Clear(ctx); err != nil {
				return NewServiceError("clear_all", err)
			}
		} else if err := s.settings.SaveSettings(ctx, domain.DefaultSettings()); err != nil {
			return NewServiceError("clear_all", err)
		}
	}

	log.Warn("all planner data cleared")
	return nil
}

// StorageInfo implements PlannerService.StorageInfo.
func (s *plannerServiceImpl) StorageInfo(ctx context.Context) (store.StorageInfo, error) {
	if p, ok := s.tasks.(store.InfoProvider); ok {
		info, err := p.Info(ctx)
		if err != nil {
			return store.StorageInfo{}, NewServiceError("storage_info", err)
		}
		return info, nil
	}

	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return store.StorageInfo{}, NewServiceError("storage_info", err)
	}
	return store.StorageInfo{TotalTasks: len(tasks)}, nil
}

// updateTask applies fn to the task with id and writes the collection back.
func (s *plannerServiceImpl) updateTask(
	ctx context.Context,
	operation string,
	id string,
	fn func(domain.StudyTask, time.Time) (domain.StudyTask, error),
) (domain.StudyTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.GetTasks(ctx)
	if err != nil {
		return domain.StudyTask{}, NewServiceError(operation, err)
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return domain.StudyTask{}, fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}

	updated, err := fn(tasks[i].Clone(), s.clock().UTC())
	if err != nil {
		if !errors.Is(err, srs.ErrReviewNotFound) && !errors.Is(err, srs.ErrNotStudyTask) {
			log.Warn("task update rejected",
				slog.String("operation", operation),
				slog.String("task_id", id),
				slog.String("error", err.Error()))
		}
		return domain.StudyTask{}, err
	}

	next := domain.CloneTasks(tasks)
	next[i] = updated
	if err := s.tasks.SaveTasks(ctx, next); err != nil {
		log.Error("failed to save tasks",
			slog.String("operation", operation),
			slog.String("task_id", id),
			slog.String("error", err.Error()))
		return domain.StudyTask{}, NewServiceError(operation, err)
	}

	log.Debug("task updated",
		slog.String("operation", operation),
		slog.String("task_id", id))
	return updated.Clone(), nil
}

func indexOf(tasks []domain.StudyTask, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
