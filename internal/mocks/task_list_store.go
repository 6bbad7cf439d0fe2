package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/store"
)

// MockTaskListStore implements store.TaskListStore for testing
type MockTaskListStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, list *domain.TaskList) error
	GetForOwnerFn func(ctx context.Context, id, ownerID uuid.UUID) (*domain.TaskList, error)
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID, page store.Page) ([]*domain.TaskList, error)
	UpdateFn      func(ctx context.Context, list *domain.TaskList) error
	DeleteFn      func(ctx context.Context, id, ownerID uuid.UUID) error

	// Data for default implementation
	Lists map[uuid.UUID]*domain.TaskList
}

// NewMockTaskListStore creates a new mock store with initialized defaults
func NewMockTaskListStore() *MockTaskListStore {
	return &MockTaskListStore{
		Lists: make(map[uuid.UUID]*domain.TaskList),
	}
}

// AddList registers a task list in the default in-memory map.
func (m *MockTaskListStore) AddList(list *domain.TaskList) {
	m.Lists[list.ID] = list
}

// Create implements the TaskListStore interface
func (m *MockTaskListStore) Create(ctx context.Context, list *domain.TaskList) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, list)
	}

	if err := list.Validate(); err != nil {
		return err
	}

	m.Lists[list.ID] = list
	return nil
}

// GetForOwner implements the TaskListStore interface. A list owned by a
// different user is reported as not found, matching the real store.
func (m *MockTaskListStore) GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.TaskList, error) {
	if m.GetForOwnerFn != nil {
		return m.GetForOwnerFn(ctx, id, ownerID)
	}

	list, exists := m.Lists[id]
	if !exists || list.OwnerID != ownerID {
		return nil, store.ErrTaskListNotFound
	}

	return list, nil
}

// ListByOwner implements the TaskListStore interface
func (m *MockTaskListStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, page store.Page) ([]*domain.TaskList, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID, page)
	}

	var owned []*domain.TaskList
	for _, list := range m.Lists {
		if list.OwnerID == ownerID {
			owned = append(owned, list)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	page = page.Normalize()
	offset := page.Offset()
	if offset >= len(owned) {
		return nil, nil
	}
	end := offset + page.Limit()
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

// Update implements the TaskListStore interface
func (m *MockTaskListStore) Update(ctx context.Context, list *domain.TaskList) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, list)
	}

	existing, exists := m.Lists[list.ID]
	if !exists || existing.OwnerID != list.OwnerID {
		return store.ErrTaskListNotFound
	}

	m.Lists[list.ID] = list
	return nil
}

// Delete implements the TaskListStore interface
func (m *MockTaskListStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, ownerID)
	}

	existing, exists := m.Lists[id]
	if !exists || existing.OwnerID != ownerID {
		return store.ErrTaskListNotFound
	}

	delete(m.Lists, id)
	return nil
}

// WithTx implements the TaskListStore interface. The mock has no
// transaction state, so it returns itself.
func (m *MockTaskListStore) WithTx(tx *sql.Tx) store.TaskListStore {
	return m
}

// Compile-time check that MockTaskListStore satisfies the interface
var _ store.TaskListStore = (*MockTaskListStore)(nil)
