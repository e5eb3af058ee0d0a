package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/phrazzld/scry-planner/internal/platform/logger"
	"github.com/phrazzld/scry-planner/internal/store"
)

const (
	selectTasksQuery = `
		SELECT id, title, anchor_date, kind, completed, completed_at, created_at, updated_at, reviews
		FROM tasks
		ORDER BY position`

	insertTaskQuery = `
		INSERT INTO tasks (id, title, anchor_date, kind, completed, completed_at, created_at, updated_at, reviews, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	upsertMetaQuery = `
		INSERT INTO tasks_meta (id, last_update) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET last_update = EXCLUDED.last_update`

	selectSettingsQuery = `SELECT data FROM settings WHERE id = 1`

	upsertSettingsQuery = `
		INSERT INTO settings (id, data, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	infoQuery = `
		SELECT (SELECT COUNT(*) FROM tasks), (SELECT last_update FROM tasks_meta WHERE id = 1)`
)

// Store implements the planner stores on PostgreSQL.
type Store struct {
	db       *sql.DB
	logger   *slog.Logger
	now      func() time.Time
	defaults domain.Settings
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

// NewStore creates a Store on db. It panics if db is nil.
func NewStore(db *sql.DB, log *slog.Logger, opts ...Option) *Store {
	if db == nil {
		panic("postgres.NewStore: db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		db:       db,
		logger:   log.With(slog.String("component", "postgres_store")),
		now:      time.Now,
		defaults: domain.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTasks implements store.TaskStore.
func (s *Store) GetTasks(ctx context.Context) ([]domain.StudyTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, selectTasksQuery)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("tasks", "read", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.StudyTask, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task", slog.String("error", err.Error()))
			return nil, store.Failure("tasks", "read", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("tasks", "read", "row iteration failed", MapError(err))
	}

	return tasks, nil
}

// SaveTasks implements store.TaskStore by replacing every row inside one
// transaction.
func (s *Store) SaveTasks(ctx context.Context, tasks []domain.StudyTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return MapError(err)
		}
		for i, task := range tasks {
			if err := insertTask(ctx, tx, i, task); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, upsertMetaQuery, s.now().UTC()); err != nil {
			return MapError(err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save tasks",
			slog.Int("count", len(tasks)),
			slog.String("error", err.Error()))
		return store.Failure("tasks", "save", err)
	}

	log.Debug("tasks saved", slog.Int("count", len(tasks)))
	return nil
}

// GetSettings implements store.SettingsStore.
func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, selectSettingsQuery).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return s.defaults, nil
	}
	if err != nil {
		return domain.Settings{}, store.NewStoreError("settings", "read", "query failed", MapError(err))
	}

	settings := s.defaults
	if err := json.Unmarshal(raw, &settings); err != nil {
		return domain.Settings{}, store.Failure("settings", "read",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}
	return settings, nil
}

// SaveSettings implements store.SettingsStore.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, upsertSettingsQuery, string(data), s.now().UTC()); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save settings",
			slog.String("error", err.Error()))
		return store.NewStoreError("settings", "save", "upsert failed", MapError(err))
	}
	return nil
}

// Info implements store.InfoProvider.
func (s *Store) Info(ctx context.Context) (store.StorageInfo, error) {
	var (
		count      int
		lastUpdate sql.NullTime
	)
	if err := s.db.QueryRowContext(ctx, infoQuery).Scan(&count, &lastUpdate); err != nil {
		return store.StorageInfo{}, store.NewStoreError("tasks", "info", "query failed", MapError(err))
	}

	info := store.StorageInfo{TotalTasks: count}
	if lastUpdate.Valid {
		lu := lastUpdate.Time.UTC()
		info.LastUpdate = &lu
	}
	return info, nil
}

// Clear implements store.Clearer.
func (s *Store) Clear(ctx context.Context) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, q := range []string{`DELETE FROM tasks`, `DELETE FROM tasks_meta`, `DELETE FROM settings`} {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				return MapError(err)
			}
		}
		return nil
	})
	if err != nil {
		return store.Failure("tasks", "clear", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("all planner data cleared")
	return nil
}

func insertTask(ctx context.Context, q store.DBTX, position int, task domain.StudyTask) error {
	reviews := task.Reviews
	if reviews == nil {
		reviews = []domain.ReviewEvent{}
	}
	reviewsJSON, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("failed to encode reviews of task %s: %w", task.ID, err)
	}

	_, err = q.ExecContext(ctx, insertTaskQuery,
		task.ID,
		task.Title,
		task.AnchorDate.String(),
		string(task.Kind),
		task.Completed,
		task.CompletedAt,
		task.CreatedAt.UTC(),
		task.UpdatedAt,
		string(reviewsJSON),
		position,
	)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.StudyTask, error) {
	var (
		task        domain.StudyTask
		anchor      string
		kind        string
		completedAt sql.NullTime
		updatedAt   sql.NullTime
		reviews     []byte
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&anchor,
		&kind,
		&task.Completed,
		&completedAt,
		&task.CreatedAt,
		&updatedAt,
		&reviews,
	); err != nil {
		return domain.StudyTask{}, err
	}

	date, err := calendar.Parse(anchor)
	if err != nil {
		return domain.StudyTask{}, fmt.Errorf("%w: task %s: %v", store.ErrInvalidEntity, task.ID, err)
	}
	task.AnchorDate = date

	if task.Kind, err = domain.ParseTaskKind(kind); err != nil {
		return domain.StudyTask{}, fmt.Errorf("%w: task %s: %v", store.ErrInvalidEntity, task.ID, err)
	}

	task.CreatedAt = task.CreatedAt.UTC()
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		task.CompletedAt = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		task.UpdatedAt = &t
	}

	if len(reviews) > 0 {
		if err := json.Unmarshal(reviews, &task.Reviews); err != nil {
			return domain.StudyTask{}, fmt.Errorf("%w: reviews of task %s: %v", store.ErrInvalidEntity, task.ID, err)
		}
		if len(task.Reviews) == 0 {
			task.Reviews = nil
		}
	}

	return task, nil
}
