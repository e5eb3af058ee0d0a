package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
)

// TaskKind is the activity type of a task. Only study tasks get reviews.
type TaskKind string

// Possible task kinds
const (
	TaskKindStudy TaskKind = "study"
	TaskKindOther TaskKind = "other"
)

// labelStudy is the Persian activity label that marks a study task.
const labelStudy = "مطالعه"

// ParseTaskKind decodes a task kind. The Persian study label decodes as
// TaskKindStudy and any other non-empty label as TaskKindOther.
func ParseTaskKind(s string) (TaskKind, error) {
	switch strings.TrimSpace(s) {
	case "":
		return "", ErrInvalidTaskKind
	case string(TaskKindStudy), labelStudy:
		return TaskKindStudy, nil
	default:
		return TaskKindOther, nil
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TaskKind) UnmarshalText(text []byte) error {
	parsed, err := ParseTaskKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// StudyTask is a learner's task anchored on a Solar Hijri date. Study tasks
// carry their review schedule; other tasks have no reviews.
type StudyTask struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	AnchorDate  calendar.Date `json:"date"`
	Kind        TaskKind      `json:"type"`
	Completed   bool          `json:"completed"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	CreatedAt   time.Time     `json:"created"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
	Reviews     []ReviewEvent `json:"reviews,omitempty"`
}

// NewStudyTask creates a task with a fresh ID. The title is trimmed and
// must not be empty. Reviews are attached by the caller for study tasks.
func NewStudyTask(title string, anchor calendar.Date, kind TaskKind, now time.Time) (StudyTask, error) {
	task := StudyTask{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(title),
		AnchorDate: anchor,
		Kind:       kind,
		CreatedAt:  now.UTC(),
	}

	if err := task.Validate(); err != nil {
		return StudyTask{}, err
	}

	return task, nil
}

// Validate checks the fields every stored task must have.
func (t StudyTask) Validate() error {
	if t.ID == "" {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	if t.AnchorDate.IsZero() {
		return NewValidationError("date", "is required", ErrValidation)
	}
	if t.Kind != TaskKindStudy && t.Kind != TaskKindOther {
		return NewValidationError("type", "is unknown", ErrInvalidTaskKind)
	}
	for _, r := range t.Reviews {
		if !r.Kind.IsValid() {
			return NewValidationError("reviews", "contain an unknown kind", ErrInvalidReviewKind)
		}
	}
	return nil
}

// IsStudy reports whether the task is a study task.
func (t StudyTask) IsStudy() bool {
	return t.Kind == TaskKindStudy
}

// Clone returns a copy of t that shares no mutable state with it.
func (t StudyTask) Clone() StudyTask {
	c := t
	if t.Reviews != nil {
		c.Reviews = make([]ReviewEvent, len(t.Reviews))
		copy(c.Reviews, t.Reviews)
	}
	return c
}

// CloneTasks deep-copies a task collection.
func CloneTasks(tasks []StudyTask) []StudyTask {
	if tasks == nil {
		return nil
	}
	out := make([]StudyTask, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
