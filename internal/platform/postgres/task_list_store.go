package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/platform/logger"
	"github.com/taskhive/taskhive-api/internal/store"
)

// PostgresTaskListStore implements the store.TaskListStore interface
// using a PostgreSQL database as the storage backend.
//
// All ID-addressed queries carry an owner_id predicate, which is what makes
// foreign lists indistinguishable from missing ones.
type PostgresTaskListStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskListStore creates a new PostgreSQL implementation of the
// TaskListStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskListStore(db store.DBTX, logger *slog.Logger) *PostgresTaskListStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskListStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_list_store")),
	}
}

// Ensure PostgresTaskListStore implements store.TaskListStore interface
var _ store.TaskListStore = (*PostgresTaskListStore)(nil)

// Create implements store.TaskListStore.Create
func (s *PostgresTaskListStore) Create(ctx context.Context, list *domain.TaskList) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := list.Validate(); err != nil {
		log.Warn("task list validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_list_id", list.ID.String()))
		return err
	}

	query := `
		INSERT INTO task_lists (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		list.ID,
		list.Name,
		nullString(list.Description),
		list.OwnerID,
		list.CreatedAt,
		list.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create task list",
			slog.String("error", err.Error()),
			slog.String("task_list_id", list.ID.String()),
			slog.String("owner_id", list.OwnerID.String()))
		return MapError(err)
	}

	log.Info("task list created successfully",
		slog.String("task_list_id", list.ID.String()),
		slog.String("owner_id", list.OwnerID.String()))
	return nil
}

// GetForOwner implements store.TaskListStore.GetForOwner
// The aggregate join populates the derived task counts in one round trip.
func (s *PostgresTaskListStore) GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.TaskList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT l.id, l.name, l.description, l.owner_id, l.created_at, l.updated_at,
		       COUNT(t.id) AS task_count,
		       COUNT(t.id) FILTER (WHERE t.status = 'completed') AS completed_count
		FROM task_lists l
		LEFT JOIN tasks t ON t.task_list_id = l.id
		WHERE l.id = $1 AND l.owner_id = $2
		GROUP BY l.id
	`

	list, err := scanTaskList(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task list not found",
				slog.String("task_list_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrTaskListNotFound
		}
		log.Error("failed to get task list",
			slog.String("error", err.Error()),
			slog.String("task_list_id", id.String()))
		return nil, MapError(err)
	}

	return list, nil
}

// ListByOwner implements store.TaskListStore.ListByOwner
func (s *PostgresTaskListStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, page store.Page) ([]*domain.TaskList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	query := `
		SELECT l.id, l.name, l.description, l.owner_id, l.created_at, l.updated_at,
		       COUNT(t.id) AS task_count,
		       COUNT(t.id) FILTER (WHERE t.status = 'completed') AS completed_count
		FROM task_lists l
		LEFT JOIN tasks t ON t.task_list_id = l.id
		WHERE l.owner_id = $1
		GROUP BY l.id
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to list task lists",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	lists := make([]*domain.TaskList, 0)
	for rows.Next() {
		list, err := scanTaskList(rows)
		if err != nil {
			log.Error("failed to scan task list row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return lists, nil
}

// Update implements store.TaskListStore.Update
func (s *PostgresTaskListStore) Update(ctx context.Context, list *domain.TaskList) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := list.Validate(); err != nil {
		log.Warn("task list validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_list_id", list.ID.String()))
		return err
	}

	list.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE task_lists
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND owner_id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		list.Name,
		nullString(list.Description),
		list.UpdatedAt,
		list.ID,
		list.OwnerID,
	)

	if err != nil {
		log.Error("failed to update task list",
			slog.String("error", err.Error()),
			slog.String("task_list_id", list.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskListNotFound); err != nil {
		return err
	}

	log.Info("task list updated successfully",
		slog.String("task_list_id", list.ID.String()))
	return nil
}

// Delete implements store.TaskListStore.Delete
// Contained tasks are removed by the ON DELETE CASCADE on tasks.task_list_id.
func (s *PostgresTaskListStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM task_lists
		WHERE id = $1 AND owner_id = $2
	`
	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		log.Error("failed to delete task list",
			slog.String("error", err.Error()),
			slog.String("task_list_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskListNotFound); err != nil {
		return err
	}

	log.Info("task list deleted successfully",
		slog.String("task_list_id", id.String()),
		slog.String("owner_id", ownerID.String()))
	return nil
}

// WithTx implements store.TaskListStore.WithTx
func (s *PostgresTaskListStore) WithTx(tx *sql.Tx) store.TaskListStore {
	return &PostgresTaskListStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTaskList maps one task list row, including the aggregate counts.
func scanTaskList(row rowScanner) (*domain.TaskList, error) {
	var list domain.TaskList
	var description sql.NullString

	err := row.Scan(
		&list.ID,
		&list.Name,
		&description,
		&list.OwnerID,
		&list.CreatedAt,
		&list.UpdatedAt,
		&list.TaskCount,
		&list.CompletedCount,
	)
	if err != nil {
		return nil, err
	}

	list.Description = description.String
	return &list, nil
}
