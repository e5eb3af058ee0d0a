package filestore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/phrazzld/scry-planner/internal/domain/srs"
	"github.com/phrazzld/scry-planner/internal/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataDir = "/data"

func newTestStore(t *testing.T, fs afero.Fs) *Store {
	t.Helper()
	s := New(fs, dataDir, nil)
	s.now = func() time.Time { return time.Date(2024, 3, 29, 10, 0, 0, 0, time.UTC) }
	return s
}

func sampleTask(t *testing.T) domain.StudyTask {
	t.Helper()
	anchor, err := calendar.New(1403, 1, 10)
	require.NoError(t, err)
	return domain.StudyTask{
		ID:         "task-1",
		Title:      "فصل اول",
		AnchorDate: anchor,
		Kind:       domain.TaskKindStudy,
		CreatedAt:  time.Date(2024, 3, 29, 8, 0, 0, 0, time.UTC),
		Reviews:    srs.GenerateReviewSchedule(anchor, domain.DefaultReviewIntervals()),
	}
}

func TestStore_EmptyDirectory(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, afero.NewMemMapFs())
	ctx := context.Background()

	tasks, err := s.GetTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)

	info, err := s.Info(ctx)
	require.NoError(t, err)
	assert.Zero(t, info.TotalTasks)
	assert.Nil(t, info.LastUpdate)
}

func TestStore_SaveAndGetTasks(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)
	ctx := context.Background()

	task := sampleTask(t)
	other := domain.StudyTask{ID: "task-2", Title: "gym", AnchorDate: task.AnchorDate, Kind: domain.TaskKindOther}
	require.NoError(t, s.SaveTasks(ctx, []domain.StudyTask{task, other}))

	got, err := s.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, task, got[0])
	assert.Equal(t, "task-2", got[1].ID)
	assert.Empty(t, got[1].Reviews)

	raw, err := afero.ReadFile(fs, "/data/tasks.json")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, DocumentVersion, doc["version"])
	assert.Equal(t, "2024-03-29T10:00:00Z", doc["lastUpdate"])

	exists, err := afero.Exists(fs, "/data/tasks.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)

	info, err := s.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, info.TotalTasks)
	require.NotNil(t, info.LastUpdate)
	assert.Equal(t, time.Date(2024, 3, 29, 10, 0, 0, 0, time.UTC), *info.LastUpdate)
}

func TestStore_SaveReplacesCollection(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, afero.NewMemMapFs())
	ctx := context.Background()

	require.NoError(t, s.SaveTasks(ctx, []domain.StudyTask{sampleTask(t)}))
	require.NoError(t, s.SaveTasks(ctx, nil))

	got, err := s.GetTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Settings(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, afero.NewMemMapFs())
	ctx := context.Background()

	want := domain.Settings{
		ReviewIntervals: domain.ReviewIntervals{First: 2, Second: 4, Third: 9, Exam: 20},
		DarkMode:        true,
		AutoBackup:      true,
	}
	require.NoError(t, s.SaveSettings(ctx, want))

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_PartialSettingsFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/settings.json", []byte(`{"darkMode":true}`), 0o644))
	s := newTestStore(t, fs)

	got, err := s.GetSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, got.DarkMode)
	assert.True(t, got.Notifications)
	assert.Equal(t, domain.DefaultReviewIntervals(), got.ReviewIntervals)
}

func TestStore_WriteFailure(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, afero.NewReadOnlyFs(afero.NewMemMapFs()))
	ctx := context.Background()

	err := s.SaveTasks(ctx, []domain.StudyTask{sampleTask(t)})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStoreFailure)

	err = s.SaveSettings(ctx, domain.DefaultSettings())
	assert.ErrorIs(t, err, store.ErrStoreFailure)
}

func TestStore_CorruptFile(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/tasks.json", []byte("{not json"), 0o644))
	s := newTestStore(t, fs)

	_, err := s.GetTasks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStoreFailure)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)
	ctx := context.Background()

	require.NoError(t, s.Clear(ctx), "clearing an empty directory succeeds")

	require.NoError(t, s.SaveTasks(ctx, []domain.StudyTask{sampleTask(t)}))
	require.NoError(t, s.SaveSettings(ctx, domain.Settings{DarkMode: true, ReviewIntervals: domain.DefaultReviewIntervals()}))
	require.NoError(t, s.Clear(ctx))

	tasks, err := s.GetTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestNew_NilFsPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil, dataDir, nil) })
}

func TestStore_WithDefaultSettings(t *testing.T) {
	t.Parallel()
	defaults := domain.DefaultSettings()
	defaults.ReviewIntervals = domain.ReviewIntervals{First: 2, Second: 4, Third: 8, Exam: 16}
	s := New(afero.NewMemMapFs(), dataDir, nil, WithDefaultSettings(defaults))

	got, err := s.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaults, got)
}

func TestStore_EsfandThirtyDueDateReloads(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, afero.NewMemMapFs())
	ctx := context.Background()

	// 1409 is leap, so the exam lands on Esfand 30.
	anchor, err := calendar.New(1409, 12, 16)
	require.NoError(t, err)
	task := domain.StudyTask{
		ID:         "task-esfand",
		Title:      "مرور پایان سال",
		AnchorDate: anchor,
		Kind:       domain.TaskKindStudy,
		Reviews:    srs.GenerateReviewSchedule(anchor, domain.DefaultReviewIntervals()),
	}
	require.Equal(t, "1409/12/30", task.Reviews[3].DueDate.String())

	require.NoError(t, s.SaveTasks(ctx, []domain.StudyTask{task}))

	got, err := s.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, task.Reviews, got[0].Reviews)
}
