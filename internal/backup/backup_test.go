package backup

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/phrazzld/scry-planner/internal/domain/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks(t *testing.T) []domain.StudyTask {
	t.Helper()
	anchor, err := calendar.New(1403, 1, 10)
	require.NoError(t, err)
	return []domain.StudyTask{{
		ID:         "task-1",
		Title:      "فصل اول",
		AnchorDate: anchor,
		Kind:       domain.TaskKindStudy,
		CreatedAt:  time.Date(2024, 3, 29, 8, 0, 0, 0, time.UTC),
		Reviews:    srs.GenerateReviewSchedule(anchor, domain.DefaultReviewIntervals()),
	}}
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 4, 2, 12, 30, 0, 0, time.UTC)
	settings := domain.DefaultSettings()
	settings.DarkMode = true
	doc := New(sampleTasks(t), settings, now)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.Equal(t, Version, fields["version"])
	assert.Equal(t, "2024-04-02T12:30:00Z", fields["exportDate"])

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestNewCopiesTasks(t *testing.T) {
	t.Parallel()

	tasks := sampleTasks(t)
	doc := New(tasks, domain.DefaultSettings(), time.Now())
	doc.Tasks[0].Reviews[0].Completed = true
	assert.False(t, tasks[0].Reviews[0].Completed)

	empty := New(nil, domain.DefaultSettings(), time.Now())
	assert.NotNil(t, empty.Tasks)
}

func TestDecodeWithoutSettings(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(`{"tasks":[]}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Tasks)
	assert.Nil(t, doc.Settings)
	assert.True(t, doc.ExportDate.IsZero())
}

func TestDecodeLegacyDocument(t *testing.T) {
	t.Parallel()

	raw := `{
  "tasks": [{"id":"1","title":"ریاضی","date":"۱۴۰۳/۰۲/۰۵","type":"مطالعه","completed":false,
    "created":"2024-04-24T06:00:00.000Z",
    "reviews":[{"type":"مرور اول","date":"1403/02/06","completed":true,"postponed":1}]}],
  "settings": {"reviewIntervals":{"review1":1,"review2":3,"review3":7,"exam":14},"darkMode":false},
  "exportDate": "2024-04-25T10:00:00.000Z",
  "version": "1.0.0"
}`
	doc, err := Decode(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, domain.TaskKindStudy, doc.Tasks[0].Kind)
	assert.Equal(t, domain.ReviewFirst, doc.Tasks[0].Reviews[0].Kind)
	require.NotNil(t, doc.Settings)
	assert.True(t, doc.Settings.Notifications, "absent fields keep defaults")
}

func TestDecodeRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{tasks:`},
		{"empty input", ``},
		{"tasks missing", `{"settings":{}}`},
		{"tasks null", `{"tasks":null}`},
		{"tasks is an object", `{"tasks":{"id":"1"}}`},
		{"tasks is a string", `{"tasks":"none"}`},
		{"invalid date", `{"tasks":[{"id":"1","title":"x","date":"1404/12/30","type":"study","created":"2024-01-01T00:00:00Z"}]}`},
		{"unknown review kind", `{"tasks":[{"id":"1","title":"x","date":"1403/01/01","type":"study","created":"2024-01-01T00:00:00Z","reviews":[{"type":"fifth","date":"1403/01/02"}]}]}`},
		{"task without id", `{"tasks":[{"title":"x","date":"1403/01/01","type":"study","created":"2024-01-01T00:00:00Z"}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformedBackup)
		})
	}
}
