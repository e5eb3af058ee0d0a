// Package filestore implements the planner stores as JSON documents in a
// directory: tasks.json holds the task collection and settings.json the
// settings. Filesystem access goes through afero so tests can run on an
// in-memory filesystem.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/platform/logger"
	"github.com/phrazzld/scry-planner/internal/store"
	"github.com/spf13/afero"
)

// File names inside the data directory.
const (
	TasksFile    = "tasks.json"
	SettingsFile = "settings.json"

	// DocumentVersion is written into tasks.json.
	DocumentVersion = "1.0.0"
)

// tasksDocument is the on-disk shape of tasks.json.
type tasksDocument struct {
	Tasks      []domain.StudyTask `json:"tasks"`
	Version    string             `json:"version"`
	LastUpdate time.Time          `json:"lastUpdate"`
}

// Store keeps tasks and settings as JSON files under a base directory.
// File access is serialized within one Store; separate processes writing the
// same directory are not coordinated and the last write wins.
type Store struct {
	fs       afero.Fs
	baseDir  string
	logger   *slog.Logger
	now      func() time.Time
	defaults domain.Settings
	mu       sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithDefaultSettings sets the settings returned before any are saved.
func WithDefaultSettings(settings domain.Settings) Option {
	return func(s *Store) {
		s.defaults = settings
	}
}

// Compile-time checks
var (
	_ store.TaskStore     = (*Store)(nil)
	_ store.SettingsStore = (*Store)(nil)
	_ store.InfoProvider  = (*Store)(nil)
	_ store.Clearer       = (*Store)(nil)
)

// New creates a Store on fs rooted at baseDir.
// Use afero.NewOsFs() for real filesystem operations,
// or afero.NewMemMapFs() for testing.
func New(fs afero.Fs, baseDir string, log *slog.Logger, opts ...Option) *Store {
	if fs == nil {
		panic("filestore.New: fs cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		fs:       fs,
		baseDir:  baseDir,
		logger:   log.With(slog.String("component", "file_store")),
		now:      time.Now,
		defaults: domain.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOs creates a Store using the real operating system filesystem.
func NewOs(baseDir string, log *slog.Logger, opts ...Option) *Store {
	return New(afero.NewOsFs(), baseDir, log, opts...)
}

// GetTasks implements store.TaskStore. A missing tasks file reads as an
// empty collection.
func (s *Store) GetTasks(ctx context.Context) ([]domain.StudyTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.readTasks(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// SaveTasks implements store.TaskStore by rewriting tasks.json.
func (s *Store) SaveTasks(ctx context.Context, tasks []domain.StudyTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tasks == nil {
		tasks = []domain.StudyTask{}
	}
	doc := tasksDocument{
		Tasks:      tasks,
		Version:    DocumentVersion,
		LastUpdate: s.now().UTC(),
	}
	if err := s.writeJSON(ctx, TasksFile, doc); err != nil {
		return store.Failure("tasks", "save", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("tasks saved", slog.Int("count", len(tasks)))
	return nil
}

// GetSettings implements store.SettingsStore. A missing settings file reads
// as the default settings, and fields absent from the file keep their
// default values.
func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.defaults
	if _, err := s.readJSON(ctx, SettingsFile, &settings); err != nil {
		return domain.Settings{}, store.Failure("settings", "read", err)
	}
	return settings, nil
}

// SaveSettings implements store.SettingsStore.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeJSON(ctx, SettingsFile, settings); err != nil {
		return store.Failure("settings", "save", err)
	}
	return nil
}

// Info implements store.InfoProvider. LastUpdate is nil when no tasks have
// been saved yet.
func (s *Store) Info(ctx context.Context) (store.StorageInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, found, err := s.readTasks(ctx)
	if err != nil {
		return store.StorageInfo{}, err
	}
	info := store.StorageInfo{TotalTasks: len(doc.Tasks)}
	if found && !doc.LastUpdate.IsZero() {
		lu := doc.LastUpdate
		info.LastUpdate = &lu
	}
	return info, nil
}

// Clear implements store.Clearer by removing both documents.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{TasksFile, SettingsFile} {
		if err := s.fs.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return store.Failure(name, "clear", err)
		}
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("data directory cleared", slog.String("dir", s.baseDir))
	return nil
}

func (s *Store) readTasks(ctx context.Context) (tasksDocument, bool, error) {
	var doc tasksDocument
	found, err := s.readJSON(ctx, TasksFile, &doc)
	if err != nil {
		return tasksDocument{}, false, store.Failure("tasks", "read", err)
	}
	if doc.Tasks == nil {
		doc.Tasks = []domain.StudyTask{}
	}
	return doc, found, nil
}

// readJSON decodes the named file into v. It reports false without error
// when the file does not exist.
func (s *Store) readJSON(ctx context.Context, name string, v any) (bool, error) {
	data, err := afero.ReadFile(s.fs, s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("corrupt data file",
			slog.String("file", name),
			slog.String("error", err.Error()))
		return false, fmt.Errorf("%w: %s: %v", store.ErrInvalidEntity, name, err)
	}
	return true, nil
}

// writeJSON writes v to a temporary file and renames it over the named
// file so readers never observe a partial document.
func (s *Store) writeJSON(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	if err := s.fs.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp := s.path(name + ".tmp")
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp, s.path(name)); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("data file written",
		slog.String("file", name),
		slog.Int("bytes", len(data)))
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.baseDir, name)
}
