package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Unlike TaskListStore, task reads are not owner-scoped at the query level:
// task access rules depend on the parent list's owner and the task's
// assignee, which the service layer resolves.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the task list or assignee does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns the tasks matching the filter, ordered by created_at
	// descending, windowed by the given page.
	List(ctx context.Context, filter TaskFilter, page Page) ([]*domain.Task, error)

	// ListByTaskList returns every task in the given list, ordered by
	// created_at descending. Unpaginated so detail views stay consistent
	// with the list's task counts.
	ListByTaskList(ctx context.Context, taskListID uuid.UUID) ([]*domain.Task, error)

	// Update modifies an existing task's mutable fields (title, description,
	// priority, assignee, due date).
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateStatus sets the task's status.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error

	// Assign sets the task's assignee, overwriting any prior assignment.
	// A nil assignee clears the assignment.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns ErrInvalidEntity if the assignee does not exist.
	Assign(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
