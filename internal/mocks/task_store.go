package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListFn           func(ctx context.Context, filter store.TaskFilter, page store.Page) ([]*domain.Task, error)
	ListByTaskListFn func(ctx context.Context, taskListID uuid.UUID) ([]*domain.Task, error)
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	UpdateStatusFn   func(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error
	AssignFn         func(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Tasks map[uuid.UUID]*domain.Task

	// LastFilter records the filter passed to the most recent List call.
	LastFilter store.TaskFilter

	// LastPage records the page passed to the most recent List call.
	LastPage store.Page
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// AddTask registers a task in the default in-memory map.
func (m *MockTaskStore) AddTask(task *domain.Task) {
	m.Tasks[task.ID] = task
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if err := task.Validate(); err != nil {
		return err
	}

	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// List implements the TaskStore interface. The default implementation
// applies the full filter so service tests can exercise narrowing.
func (m *MockTaskStore) List(ctx context.Context, filter store.TaskFilter, page store.Page) ([]*domain.Task, error) {
	m.LastFilter = filter
	m.LastPage = page

	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}

	now := time.Now().UTC()
	var matched []*domain.Task
	for _, task := range m.Tasks {
		if task.TaskListID != filter.TaskListID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.AssignedTo != nil {
			if task.AssignedTo == nil || *task.AssignedTo != *filter.AssignedTo {
				continue
			}
		}
		if filter.OverdueOnly && !task.IsOverdue(now) {
			continue
		}
		matched = append(matched, task)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page = page.Normalize()
	offset := page.Offset()
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + page.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// ListByTaskList implements the TaskStore interface
func (m *MockTaskStore) ListByTaskList(ctx context.Context, taskListID uuid.UUID) ([]*domain.Task, error) {
	if m.ListByTaskListFn != nil {
		return m.ListByTaskListFn(ctx, taskListID)
	}

	var matched []*domain.Task
	for _, task := range m.Tasks {
		if task.TaskListID == taskListID {
			matched = append(matched, task)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}

	m.Tasks[task.ID] = task
	return nil
}

// UpdateStatus implements the TaskStore interface
func (m *MockTaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return store.ErrTaskNotFound
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	return nil
}

// Assign implements the TaskStore interface
func (m *MockTaskStore) Assign(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error {
	if m.AssignFn != nil {
		return m.AssignFn(ctx, id, assigneeID)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return store.ErrTaskNotFound
	}

	task.AssignedTo = assigneeID
	task.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}

// WithTx implements the TaskStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Compile-time check that MockTaskStore satisfies the interface
var _ store.TaskStore = (*MockTaskStore)(nil)
