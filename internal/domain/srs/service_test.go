package srs

import (
	"testing"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceSchedule(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	reviews, err := svc.Schedule(date(t, 1403, 1, 10), domain.DefaultReviewIntervals())
	require.NoError(t, err)
	assert.Len(t, reviews, 4)

	_, err = svc.Schedule(date(t, 1403, 1, 10), domain.ReviewIntervals{First: 3, Second: 2, Third: 7, Exam: 14})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = svc.Schedule(calendar.Date{}, domain.DefaultReviewIntervals())
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestServiceReviewTransitions(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	task := studyTask(t, "a", date(t, 1403, 1, 10))

	done, err := svc.CompleteReview(task, domain.ReviewSecond, now)
	require.NoError(t, err)
	r, _ := FindReview(done, domain.ReviewSecond)
	assert.True(t, r.Completed)
	require.NotNil(t, done.UpdatedAt)
	assert.Equal(t, now, *done.UpdatedAt)
	orig, _ := FindReview(task, domain.ReviewSecond)
	assert.False(t, orig.Completed)

	reopened, err := svc.ReopenReview(done, domain.ReviewSecond, now)
	require.NoError(t, err)
	r, _ = FindReview(reopened, domain.ReviewSecond)
	assert.False(t, r.Completed)

	postponed, err := svc.PostponeReview(reopened, domain.ReviewSecond, 5, now)
	require.NoError(t, err)
	r, _ = FindReview(postponed, domain.ReviewSecond)
	assert.Equal(t, "1403/01/18", r.DueDate.String())
	assert.Equal(t, 1, r.PostponeCount)
}

func TestServiceReviewErrors(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now()
	task := studyTask(t, "a", date(t, 1403, 1, 10))

	_, err := svc.PostponeReview(task, domain.ReviewFirst, 0, now)
	assert.ErrorIs(t, err, ErrInvalidDays)

	_, err = svc.CompleteReview(task, domain.ReviewKind("fifth"), now)
	assert.ErrorIs(t, err, domain.ErrInvalidReviewKind)

	other := domain.StudyTask{ID: "b", Kind: domain.TaskKindOther}
	_, err = svc.CompleteReview(other, domain.ReviewFirst, now)
	assert.ErrorIs(t, err, ErrNotStudyTask)

	bare := domain.StudyTask{ID: "c", Kind: domain.TaskKindStudy}
	_, err = svc.ReopenReview(bare, domain.ReviewExam, now)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
