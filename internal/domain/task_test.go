package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudyTask(t *testing.T) {
	t.Parallel()

	anchor, err := calendar.New(1403, 1, 10)
	require.NoError(t, err)
	now := time.Date(2024, 3, 29, 8, 0, 0, 0, time.UTC)

	t.Run("trims title and assigns id", func(t *testing.T) {
		t.Parallel()
		task, err := NewStudyTask("  Chapter 3  ", anchor, TaskKindStudy, now)
		require.NoError(t, err)
		assert.Equal(t, "Chapter 3", task.Title)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, now, task.CreatedAt)
		assert.False(t, task.Completed)
		assert.True(t, task.IsStudy())
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		_, err := NewStudyTask("   ", anchor, TaskKindStudy, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyTitle)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("zero anchor", func(t *testing.T) {
		t.Parallel()
		_, err := NewStudyTask("x", calendar.Date{}, TaskKindStudy, now)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		_, err := NewStudyTask("x", anchor, TaskKind("nap"), now)
		assert.ErrorIs(t, err, ErrInvalidTaskKind)
	})
}

func TestParseTaskKind(t *testing.T) {
	t.Parallel()

	k, err := ParseTaskKind("مطالعه")
	require.NoError(t, err)
	assert.Equal(t, TaskKindStudy, k)

	k, err = ParseTaskKind("ورزش")
	require.NoError(t, err)
	assert.Equal(t, TaskKindOther, k)

	_, err = ParseTaskKind(" ")
	assert.ErrorIs(t, err, ErrInvalidTaskKind)
}

func TestStudyTaskCloneIsIndependent(t *testing.T) {
	t.Parallel()

	due, err := calendar.New(1403, 1, 11)
	require.NoError(t, err)
	orig := StudyTask{ID: "a", Reviews: []ReviewEvent{{Kind: ReviewFirst, DueDate: due}}}

	c := orig.Clone()
	c.Reviews[0].Completed = true

	assert.False(t, orig.Reviews[0].Completed)
}

func TestStudyTaskJSONDecodesLegacyLabels(t *testing.T) {
	t.Parallel()

	raw := `{"id":"1","title":"فصل دوم","date":"۱۴۰۳/۰۱/۱۰","type":"مطالعه","completed":false,
"created":"2024-03-29T08:00:00Z","reviews":[{"type":"مرور اول","date":"1403/01/11","completed":false,"postponed":0}]}`

	var task StudyTask
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	assert.Equal(t, TaskKindStudy, task.Kind)
	assert.Equal(t, "1403/01/10", task.AnchorDate.String())
	require.Len(t, task.Reviews, 1)
	assert.Equal(t, ReviewFirst, task.Reviews[0].Kind)
	assert.NoError(t, task.Validate())
}
