package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain"
)

// TaskListStore defines the interface for task list persistence.
//
// Every read and write that names a list ID is scoped by the owner's ID:
// a list owned by someone else behaves exactly like a missing one and
// surfaces ErrTaskListNotFound. This is the single ownership predicate for
// task lists; callers never re-check ownership themselves.
type TaskListStore interface {
	// Create saves a new task list to the store.
	// Returns validation errors from the domain TaskList if data is invalid.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, list *domain.TaskList) error

	// GetForOwner retrieves a task list by ID, scoped to the given owner.
	// The returned list carries its derived task counts.
	// Returns ErrTaskListNotFound if the list does not exist or belongs to
	// a different owner.
	GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.TaskList, error)

	// ListByOwner returns the owner's task lists ordered by created_at
	// descending, windowed by the given page. Each list carries its derived
	// task counts (total and completed) for completion percentage.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page Page) ([]*domain.TaskList, error)

	// Update modifies an existing task list's name and description, scoped
	// to the given owner.
	// Returns ErrTaskListNotFound under the same rule as GetForOwner.
	Update(ctx context.Context, list *domain.TaskList) error

	// Delete removes a task list and, via cascade, its contained tasks,
	// scoped to the given owner.
	// Returns ErrTaskListNotFound under the same rule as GetForOwner.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// WithTx returns a new TaskListStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskListStore
}
