package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
)

// Common errors
var (
	ErrInvalidDays     = errors.New("postpone days must be at least 1")
	ErrReviewNotFound  = errors.New("review not found")
	ErrNotStudyTask    = errors.New("only study tasks have reviews")
	ErrInvalidSchedule = errors.New("cannot schedule reviews for an empty date")
)

// Service defines the interface for review scheduling operations on whole
// tasks. Implementations return new task values and never modify their
// arguments.
type Service interface {
	// Schedule validates intervals and generates the review events of a
	// study task anchored on anchor.
	Schedule(anchor calendar.Date, intervals domain.ReviewIntervals) ([]domain.ReviewEvent, error)

	// CompleteReview marks the review of kind in task as completed at now.
	CompleteReview(task domain.StudyTask, kind domain.ReviewKind, now time.Time) (domain.StudyTask, error)

	// ReopenReview returns the review of kind in task to the pending state.
	ReopenReview(task domain.StudyTask, kind domain.ReviewKind, now time.Time) (domain.StudyTask, error)

	// PostponeReview pushes the review of kind in task forward by days.
	PostponeReview(task domain.StudyTask, kind domain.ReviewKind, days int, now time.Time) (domain.StudyTask, error)

	// Stats aggregates the reviews of tasks as seen on today.
	Stats(tasks []domain.StudyTask, today calendar.Date) Stats
}

// defaultService is the standard implementation of the Service interface
type defaultService struct{}

// NewDefaultService creates a new review scheduling service
func NewDefaultService() Service {
	return &defaultService{}
}

// Schedule implements Service.
func (s *defaultService) Schedule(
	anchor calendar.Date,
	intervals domain.ReviewIntervals,
) ([]domain.ReviewEvent, error) {
	if anchor.IsZero() {
		return nil, ErrInvalidSchedule
	}
	if err := intervals.Validate(); err != nil {
		return nil, err
	}
	return GenerateReviewSchedule(anchor, intervals), nil
}

// CompleteReview implements Service.
func (s *defaultService) CompleteReview(
	task domain.StudyTask,
	kind domain.ReviewKind,
	now time.Time,
) (domain.StudyTask, error) {
	return s.update(task, kind, now, func(r domain.ReviewEvent) domain.ReviewEvent {
		return MarkComplete(r, now)
	})
}

// ReopenReview implements Service.
func (s *defaultService) ReopenReview(
	task domain.StudyTask,
	kind domain.ReviewKind,
	now time.Time,
) (domain.StudyTask, error) {
	return s.update(task, kind, now, MarkIncomplete)
}

// PostponeReview implements Service.
func (s *defaultService) PostponeReview(
	task domain.StudyTask,
	kind domain.ReviewKind,
	days int,
	now time.Time,
) (domain.StudyTask, error) {
	if days < 1 {
		return domain.StudyTask{}, ErrInvalidDays
	}
	return s.update(task, kind, now, func(r domain.ReviewEvent) domain.ReviewEvent {
		return Postpone(r, days)
	})
}

// Stats implements Service.
func (s *defaultService) Stats(tasks []domain.StudyTask, today calendar.Date) Stats {
	return ComputeStats(tasks, today)
}

func (s *defaultService) update(
	task domain.StudyTask,
	kind domain.ReviewKind,
	now time.Time,
	fn func(domain.ReviewEvent) domain.ReviewEvent,
) (domain.StudyTask, error) {
	if !kind.IsValid() {
		return domain.StudyTask{}, fmt.Errorf("%w: %q", domain.ErrInvalidReviewKind, kind)
	}
	if !task.IsStudy() {
		return domain.StudyTask{}, ErrNotStudyTask
	}

	review, ok := FindReview(task, kind)
	if !ok {
		return domain.StudyTask{}, fmt.Errorf("%w: task %s has no %s review", ErrReviewNotFound, task.ID, kind)
	}

	updated, _ := ReplaceReview(task, fn(review))
	updatedAt := now.UTC()
	updated.UpdatedAt = &updatedAt
	return updated, nil
}
