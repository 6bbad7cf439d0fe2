package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/platform/logger"
	"github.com/taskhive/taskhive-api/internal/store"
)

// TaskService implements the business operations on tasks.
//
// Task access is inherited from the parent list: mutating a task requires
// owning its list, while reading it or changing its status is allowed for
// the owner and the current assignee. As with lists, a task the caller may
// not touch surfaces as not found.
type TaskService struct {
	taskStore     store.TaskStore
	taskListStore store.TaskListStore
	userStore     store.UserStore
	notifier      Notifier
	logger        *slog.Logger
}

// NewTaskService creates a new TaskService with the given dependencies.
func NewTaskService(
	taskStore store.TaskStore,
	taskListStore store.TaskListStore,
	userStore store.UserStore,
	notifier Notifier,
	logger *slog.Logger,
) (*TaskService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("taskStore cannot be nil")
	}
	if taskListStore == nil {
		return nil, fmt.Errorf("taskListStore cannot be nil")
	}
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &TaskService{
		taskStore:     taskStore,
		taskListStore: taskListStore,
		userStore:     userStore,
		notifier:      notifier,
		logger:        logger.With(slog.String("component", "task_service")),
	}, nil
}

// TaskFields carries the caller-supplied fields of a new task.
type TaskFields struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
}

// TaskPatch carries the optional fields of a task update.
// Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *domain.TaskPriority
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
}

// Create makes a new task in the given list. The list must belong to the
// caller; an optional assignee must exist and be active. An assigned task
// triggers the assignment notification.
func (s *TaskService) Create(ctx context.Context, taskListID, callerID uuid.UUID, fields TaskFields) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Parent list must exist and belong to the caller.
	if _, err := s.taskListStore.GetForOwner(ctx, taskListID, callerID); err != nil {
		return nil, err
	}

	var assignee *domain.User
	if fields.AssignedTo != nil {
		var err error
		assignee, err = s.resolveAssignee(ctx, *fields.AssignedTo)
		if err != nil {
			return nil, err
		}
	}

	task, err := domain.NewTask(taskListID, fields.Title, fields.Description, fields.Priority)
	if err != nil {
		return nil, err
	}
	task.AssignedTo = fields.AssignedTo
	task.DueDate = fields.DueDate

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, err
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("task_list_id", taskListID.String()))

	if assignee != nil {
		s.notifyAssignment(ctx, assignee, task)
	}

	return task, nil
}

// Get returns a task the caller may read: the list owner or the assignee.
// Anyone else gets store.ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, taskID, callerID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(ctx, task, callerID, true); err != nil {
		return nil, err
	}

	return task, nil
}

// Update applies a patch to a task. Only the list owner may update; an
// assignee change is validated like an assignment and notified.
func (s *TaskService) Update(ctx context.Context, taskID, callerID uuid.UUID, patch TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(ctx, task, callerID, false); err != nil {
		return nil, err
	}

	var newAssignee *domain.User
	if patch.AssignedTo != nil {
		assigneeChanged := task.AssignedTo == nil || *task.AssignedTo != *patch.AssignedTo
		newAssignee, err = s.resolveAssignee(ctx, *patch.AssignedTo)
		if err != nil {
			return nil, err
		}
		if !assigneeChanged {
			newAssignee = nil // No re-notification for a no-op assignment
		}
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = patch.AssignedTo
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	log.Debug("task updated", slog.String("task_id", taskID.String()))

	if newAssignee != nil {
		s.notifyAssignment(ctx, newAssignee, task)
	}

	return task, nil
}

// UpdateStatus sets the task's status. The list owner and the assignee may
// both change status. Only enum membership is enforced: any status may
// transition to any other.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID, callerID uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(ctx, task, callerID, true); err != nil {
		return nil, err
	}

	if err := s.taskStore.UpdateStatus(ctx, taskID, status); err != nil {
		return nil, err
	}
	task.Status = status
	task.UpdatedAt = time.Now().UTC()

	log.Debug("task status updated",
		slog.String("task_id", taskID.String()),
		slog.String("status", string(status)))
	return task, nil
}

// Assign sets the task's assignee, overwriting any prior assignment, and
// notifies the new assignee. Only the list owner may assign.
// Returns store.ErrUserNotFound if the assignee does not exist.
func (s *TaskService) Assign(ctx context.Context, taskID, callerID, assigneeID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(ctx, task, callerID, false); err != nil {
		return nil, err
	}

	assignee, err := s.resolveAssignee(ctx, assigneeID)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Assign(ctx, taskID, &assigneeID); err != nil {
		return nil, err
	}
	task.AssignedTo = &assigneeID
	task.UpdatedAt = time.Now().UTC()

	log.Debug("task assigned",
		slog.String("task_id", taskID.String()),
		slog.String("assignee_id", assigneeID.String()))

	s.notifyAssignment(ctx, assignee, task)

	return task, nil
}

// Delete removes a task. Only the list owner may delete.
func (s *TaskService) Delete(ctx context.Context, taskID, callerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.canAccess(ctx, task, callerID, false); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		return err
	}

	log.Debug("task deleted", slog.String("task_id", taskID.String()))
	return nil
}

// List returns the tasks matching the filter, newest first. The filter's
// task list must belong to the caller.
func (s *TaskService) List(ctx context.Context, callerID uuid.UUID, filter store.TaskFilter, page store.Page) ([]*domain.Task, error) {
	if _, err := s.taskListStore.GetForOwner(ctx, filter.TaskListID, callerID); err != nil {
		return nil, err
	}

	return s.taskStore.List(ctx, filter, page)
}

// canAccess is the single authorization predicate for tasks. Owner access is
// resolved through the owner-scoped list lookup; when allowAssignee is set,
// the current assignee passes too. Denial is reported as
// store.ErrTaskNotFound so foreign tasks look absent.
func (s *TaskService) canAccess(ctx context.Context, task *domain.Task, callerID uuid.UUID, allowAssignee bool) error {
	if allowAssignee && task.AssignedTo != nil && *task.AssignedTo == callerID {
		return nil
	}

	_, err := s.taskListStore.GetForOwner(ctx, task.TaskListID, callerID)
	if err != nil {
		if errors.Is(err, store.ErrTaskListNotFound) {
			return store.ErrTaskNotFound
		}
		return err
	}

	return nil
}

// resolveAssignee loads and vets a prospective assignee.
func (s *TaskService) resolveAssignee(ctx context.Context, assigneeID uuid.UUID) (*domain.User, error) {
	assignee, err := s.userStore.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}

	if !assignee.IsActive {
		return nil, ErrInactiveAssignee
	}

	return assignee, nil
}

// notifyAssignment fires the assignment notification. Notification failure
// is logged and swallowed: the mutation already happened and the client's
// request must not fail over a simulated email.
func (s *TaskService) notifyAssignment(ctx context.Context, assignee *domain.User, task *domain.Task) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.notifier.NotifyTaskAssigned(ctx, assignee, task); err != nil {
		log.Warn("failed to send assignment notification",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("assignee_id", assignee.ID.String()))
	}
}
