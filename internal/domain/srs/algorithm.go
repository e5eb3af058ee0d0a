package srs

import (
	"slices"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
)

// GenerateReviewSchedule produces the four review events of a study task
// anchored on anchor, in the order first, second, third, exam. Every event
// starts pending with a zero postpone count.
func GenerateReviewSchedule(anchor calendar.Date, intervals domain.ReviewIntervals) []domain.ReviewEvent {
	reviews := make([]domain.ReviewEvent, 0, len(domain.ReviewKinds))
	for _, kind := range domain.ReviewKinds {
		reviews = append(reviews, domain.ReviewEvent{
			Kind:    kind,
			DueDate: anchor.AddDays(intervals.Days(kind)),
		})
	}
	return reviews
}

// MarkComplete returns event marked completed at now. Completing an already
// completed event only refreshes CompletedAt.
func MarkComplete(event domain.ReviewEvent, now time.Time) domain.ReviewEvent {
	completedAt := now.UTC()
	event.Completed = true
	event.CompletedAt = &completedAt
	return event
}

// MarkIncomplete returns event back in the pending state.
func MarkIncomplete(event domain.ReviewEvent) domain.ReviewEvent {
	event.Completed = false
	event.CompletedAt = nil
	return event
}

// Postpone returns event with its due date moved days forward and its
// postpone count incremented. There is no limit on either.
func Postpone(event domain.ReviewEvent, days int) domain.ReviewEvent {
	event.DueDate = event.DueDate.AddDays(days)
	event.PostponeCount++
	return event
}

// IsOverdue reports whether event is pending and due strictly before today.
func IsOverdue(event domain.ReviewEvent, today calendar.Date) bool {
	return !event.Completed && event.DueDate.Before(today)
}

// FindReview returns the review of kind in task.
func FindReview(task domain.StudyTask, kind domain.ReviewKind) (domain.ReviewEvent, bool) {
	for _, r := range task.Reviews {
		if r.Kind == kind {
			return r, true
		}
	}
	return domain.ReviewEvent{}, false
}

// ReplaceReview returns a copy of task whose review of the same kind as
// event is replaced by event. The boolean is false when task has no review
// of that kind.
func ReplaceReview(task domain.StudyTask, event domain.ReviewEvent) (domain.StudyTask, bool) {
	out := task.Clone()
	for i := range out.Reviews {
		if out.Reviews[i].Kind == event.Kind {
			out.Reviews[i] = event
			return out, true
		}
	}
	return task, false
}

// DueReview pairs a review event with a snapshot of the task that owns it.
type DueReview struct {
	Review domain.ReviewEvent `json:"review"`
	Task   domain.StudyTask   `json:"task"`
}

// QueryByDueDate returns every review due on date together with its task,
// in task order and then schedule order.
func QueryByDueDate(tasks []domain.StudyTask, date calendar.Date) []DueReview {
	return collect(tasks, func(r domain.ReviewEvent) bool {
		return r.DueDate.Equal(date)
	})
}

// OverdueReviews returns the reviews overdue on today ordered by due date.
// Reviews with the same due date keep task order.
func OverdueReviews(tasks []domain.StudyTask, today calendar.Date) []DueReview {
	out := collect(tasks, func(r domain.ReviewEvent) bool {
		return IsOverdue(r, today)
	})
	slices.SortStableFunc(out, func(a, b DueReview) int {
		return a.Review.DueDate.Compare(b.Review.DueDate)
	})
	return out
}

// ReviewsByKind returns every review of kind ordered by due date.
func ReviewsByKind(tasks []domain.StudyTask, kind domain.ReviewKind) []DueReview {
	out := collect(tasks, func(r domain.ReviewEvent) bool {
		return r.Kind == kind
	})
	slices.SortStableFunc(out, func(a, b DueReview) int {
		return a.Review.DueDate.Compare(b.Review.DueDate)
	})
	return out
}

// TasksForDate returns the tasks anchored on date or with a review due on
// date, in task order.
func TasksForDate(tasks []domain.StudyTask, date calendar.Date) []domain.StudyTask {
	out := make([]domain.StudyTask, 0)
	for _, t := range tasks {
		if t.AnchorDate.Equal(date) || slices.ContainsFunc(t.Reviews, func(r domain.ReviewEvent) bool {
			return r.DueDate.Equal(date)
		}) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func collect(tasks []domain.StudyTask, match func(domain.ReviewEvent) bool) []DueReview {
	out := make([]DueReview, 0)
	for _, t := range tasks {
		for _, r := range t.Reviews {
			if match(r) {
				out = append(out, DueReview{Review: r, Task: t.Clone()})
			}
		}
	}
	return out
}
