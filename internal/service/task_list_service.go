package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/platform/logger"
	"github.com/taskhive/taskhive-api/internal/store"
)

// TaskListService implements the business operations on task lists.
//
// Ownership is enforced by the owner-scoped store queries: any operation that
// names a list the caller doesn't own comes back store.ErrTaskListNotFound,
// so callers cannot tell foreign lists from missing ones.
type TaskListService struct {
	taskListStore store.TaskListStore
	taskStore     store.TaskStore
	logger        *slog.Logger
}

// NewTaskListService creates a new TaskListService with the given dependencies.
func NewTaskListService(
	taskListStore store.TaskListStore,
	taskStore store.TaskStore,
	logger *slog.Logger,
) (*TaskListService, error) {
	if taskListStore == nil {
		return nil, fmt.Errorf("taskListStore cannot be nil")
	}
	if taskStore == nil {
		return nil, fmt.Errorf("taskStore cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &TaskListService{
		taskListStore: taskListStore,
		taskStore:     taskStore,
		logger:        logger.With(slog.String("component", "task_list_service")),
	}, nil
}

// Create makes a new task list owned by the caller.
// Returns domain validation errors for a missing or oversized name.
func (s *TaskListService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*domain.TaskList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	list, err := domain.NewTaskList(ownerID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.taskListStore.Create(ctx, list); err != nil {
		return nil, err
	}

	log.Debug("task list created",
		slog.String("task_list_id", list.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return list, nil
}

// List returns the caller's task lists, newest first, windowed by the page.
// Each list carries the task counts needed for its completion percentage.
func (s *TaskListService) List(ctx context.Context, ownerID uuid.UUID, page store.Page) ([]*domain.TaskList, error) {
	return s.taskListStore.ListByOwner(ctx, ownerID, page)
}

// Get returns one of the caller's task lists together with all of its tasks.
// The embedded tasks are unpaginated so they always agree with the list's
// task counts.
// Returns store.ErrTaskListNotFound for missing and foreign lists alike.
func (s *TaskListService) Get(ctx context.Context, id, ownerID uuid.UUID) (*domain.TaskList, []*domain.Task, error) {
	list, err := s.taskListStore.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.taskStore.ListByTaskList(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return list, tasks, nil
}

// TaskListPatch carries the optional fields of a task list update.
// Nil fields are left unchanged.
type TaskListPatch struct {
	Name        *string
	Description *string
}

// Update applies a patch to one of the caller's task lists and returns the
// updated list. Returns store.ErrTaskListNotFound for missing and foreign
// lists alike.
func (s *TaskListService) Update(ctx context.Context, id, ownerID uuid.UUID, patch TaskListPatch) (*domain.TaskList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	list, err := s.taskListStore.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		list.Name = *patch.Name
	}
	if patch.Description != nil {
		list.Description = *patch.Description
	}

	if err := s.taskListStore.Update(ctx, list); err != nil {
		return nil, err
	}

	log.Debug("task list updated", slog.String("task_list_id", id.String()))
	return list, nil
}

// Delete removes one of the caller's task lists; contained tasks go with it.
// Returns store.ErrTaskListNotFound for missing and foreign lists alike.
func (s *TaskListService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskListStore.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	log.Debug("task list deleted",
		slog.String("task_list_id", id.String()),
		slog.String("owner_id", ownerID.String()))
	return nil
}
