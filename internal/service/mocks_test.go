package service

import (
	"context"

	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) GetTasks(ctx context.Context) ([]domain.StudyTask, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudyTask), args.Error(1)
}

func (m *MockTaskStore) SaveTasks(ctx context.Context, tasks []domain.StudyTask) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

// MockSettingsStore mocks the store.SettingsStore interface
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) GetSettings(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockSettingsStore) SaveSettings(ctx context.Context, settings domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// memoryStore is an in-memory store backing both interfaces. GetTasks
// returns copies like the real stores do.
type memoryStore struct {
	tasks    []domain.StudyTask
	settings *domain.Settings
	saves    int
}

var (
	_ store.TaskStore     = (*memoryStore)(nil)
	_ store.SettingsStore = (*memoryStore)(nil)
	_ store.Clearer       = (*memoryStore)(nil)
)

func (m *memoryStore) GetTasks(context.Context) ([]domain.StudyTask, error) {
	out := domain.CloneTasks(m.tasks)
	if out == nil {
		out = []domain.StudyTask{}
	}
	return out, nil
}

func (m *memoryStore) SaveTasks(_ context.Context, tasks []domain.StudyTask) error {
	m.tasks = domain.CloneTasks(tasks)
	m.saves++
	return nil
}

func (m *memoryStore) GetSettings(context.Context) (domain.Settings, error) {
	if m.settings == nil {
		return domain.DefaultSettings(), nil
	}
	return *m.settings, nil
}

func (m *memoryStore) SaveSettings(_ context.Context, settings domain.Settings) error {
	m.settings = &settings
	return nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.tasks = nil
	m.settings = nil
	return nil
}
