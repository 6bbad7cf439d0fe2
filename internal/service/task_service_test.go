package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/mocks"
	"github.com/taskhive/taskhive-api/internal/store"
)

// The mocks package cannot assert this itself without importing service and
// closing an import cycle through this test binary.
var _ Notifier = (*mocks.MockNotifier)(nil)

// taskServiceFixture bundles a TaskService with its mock dependencies and a
// ready-made owner, stranger, and task list.
type taskServiceFixture struct {
	svc       *TaskService
	userStore *mocks.MockUserStore
	listStore *mocks.MockTaskListStore
	taskStore *mocks.MockTaskStore
	notifier  *mocks.MockNotifier

	owner    *domain.User
	stranger *domain.User
	list     *domain.TaskList
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	listStore := mocks.NewMockTaskListStore()
	taskStore := mocks.NewMockTaskStore()
	notifier := &mocks.MockNotifier{}

	svc, err := NewTaskService(taskStore, listStore, userStore, notifier, slog.Default())
	require.NoError(t, err)

	owner, err := domain.NewUser("owner@example.com", "owner", "", "securepass123")
	require.NoError(t, err)
	stranger, err := domain.NewUser("stranger@example.com", "stranger", "", "securepass123")
	require.NoError(t, err)
	userStore.AddUser(owner)
	userStore.AddUser(stranger)

	list, err := domain.NewTaskList(owner.ID, "Sprint", "")
	require.NoError(t, err)
	listStore.AddList(list)

	return &taskServiceFixture{
		svc:       svc,
		userStore: userStore,
		listStore: listStore,
		taskStore: taskStore,
		notifier:  notifier,
		owner:     owner,
		stranger:  stranger,
		list:      list,
	}
}

func (f *taskServiceFixture) addTask(t *testing.T, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(f.list.ID, title, "", "")
	require.NoError(t, err)
	f.taskStore.AddTask(task)
	return task
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates task in owned list", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)

		task, err := f.svc.Create(ctx, f.list.ID, f.owner.ID, TaskFields{Title: "Write docs"})
		require.NoError(t, err)

		assert.Equal(t, "Write docs", task.Title)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
		assert.Empty(t, f.notifier.Notifications)
	})

	t.Run("foreign list looks absent", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)

		_, err := f.svc.Create(ctx, f.list.ID, f.stranger.ID, TaskFields{Title: "Sneaky"})
		assert.ErrorIs(t, err, store.ErrTaskListNotFound)
	})

	t.Run("assigned task notifies the assignee", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)

		task, err := f.svc.Create(ctx, f.list.ID, f.owner.ID, TaskFields{
			Title:      "Review PR",
			AssignedTo: &f.stranger.ID,
		})
		require.NoError(t, err)

		require.Len(t, f.notifier.Notifications, 1)
		assert.Equal(t, f.stranger.ID, f.notifier.Notifications[0].Assignee.ID)
		assert.Equal(t, task.ID, f.notifier.Notifications[0].Task.ID)
	})

	t.Run("rejects inactive assignee", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		f.stranger.IsActive = false

		_, err := f.svc.Create(ctx, f.list.ID, f.owner.ID, TaskFields{
			Title:      "No go",
			AssignedTo: &f.stranger.ID,
		})
		assert.ErrorIs(t, err, ErrInactiveAssignee)
		assert.Empty(t, f.notifier.Notifications)
	})

	t.Run("rejects unknown assignee", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		ghost := uuid.New()

		_, err := f.svc.Create(ctx, f.list.ID, f.owner.ID, TaskFields{
			Title:      "No go",
			AssignedTo: &ghost,
		})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestTaskServiceGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner can read", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Readable")

		got, err := f.svc.Get(ctx, task.ID, f.owner.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("assignee can read", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Readable")
		task.AssignedTo = &f.stranger.ID

		got, err := f.svc.Get(ctx, task.ID, f.stranger.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("stranger sees not found", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Hidden")

		_, err := f.svc.Get(ctx, task.ID, f.stranger.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner patches fields", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Old title")

		newTitle := "New title"
		priority := domain.TaskPriorityHigh
		due := time.Now().UTC().Add(24 * time.Hour)

		updated, err := f.svc.Update(ctx, task.ID, f.owner.ID, TaskPatch{
			Title:    &newTitle,
			Priority: &priority,
			DueDate:  &due,
		})
		require.NoError(t, err)

		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, domain.TaskPriorityHigh, updated.Priority)
		require.NotNil(t, updated.DueDate)
		assert.True(t, updated.DueDate.Equal(due))
	})

	t.Run("assignee cannot patch fields", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Owner only")
		task.AssignedTo = &f.stranger.ID

		newTitle := "Hijacked"
		_, err := f.svc.Update(ctx, task.ID, f.stranger.ID, TaskPatch{Title: &newTitle})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("assignee change notifies", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Handoff")

		_, err := f.svc.Update(ctx, task.ID, f.owner.ID, TaskPatch{AssignedTo: &f.stranger.ID})
		require.NoError(t, err)
		require.Len(t, f.notifier.Notifications, 1)
		assert.Equal(t, f.stranger.ID, f.notifier.Notifications[0].Assignee.ID)
	})

	t.Run("unchanged assignee is not re-notified", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Steady")
		task.AssignedTo = &f.stranger.ID

		_, err := f.svc.Update(ctx, task.ID, f.owner.ID, TaskPatch{AssignedTo: &f.stranger.ID})
		require.NoError(t, err)
		assert.Empty(t, f.notifier.Notifications)
	})
}

func TestTaskServiceUpdateStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner sets any status", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Flow")

		// Transitions are unrestricted: completed may go straight back to
		// pending.
		for _, status := range []domain.TaskStatus{
			domain.TaskStatusCompleted,
			domain.TaskStatusPending,
			domain.TaskStatusCancelled,
		} {
			updated, err := f.svc.UpdateStatus(ctx, task.ID, f.owner.ID, status)
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		}
	})

	t.Run("assignee may set status", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Delegated")
		task.AssignedTo = &f.stranger.ID

		updated, err := f.svc.UpdateStatus(ctx, task.ID, f.stranger.ID, domain.TaskStatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
	})

	t.Run("stranger sees not found", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Private")

		_, err := f.svc.UpdateStatus(ctx, task.ID, f.stranger.ID, domain.TaskStatusCompleted)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Enum only")

		_, err := f.svc.UpdateStatus(ctx, task.ID, f.owner.ID, domain.TaskStatus("archived"))
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestTaskServiceAssign(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assignment overwrites and notifies", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Handover")

		third, err := domain.NewUser("third@example.com", "third", "", "securepass123")
		require.NoError(t, err)
		f.userStore.AddUser(third)

		// First assignment
		updated, err := f.svc.Assign(ctx, task.ID, f.owner.ID, f.stranger.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.AssignedTo)
		assert.Equal(t, f.stranger.ID, *updated.AssignedTo)

		// Reassignment overwrites
		updated, err = f.svc.Assign(ctx, task.ID, f.owner.ID, third.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.AssignedTo)
		assert.Equal(t, third.ID, *updated.AssignedTo)

		require.Len(t, f.notifier.Notifications, 2)
		assert.Equal(t, f.stranger.ID, f.notifier.Notifications[0].Assignee.ID)
		assert.Equal(t, third.ID, f.notifier.Notifications[1].Assignee.ID)
	})

	t.Run("only the owner assigns", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Guarded")
		task.AssignedTo = &f.stranger.ID

		// Even the assignee cannot reassign.
		_, err := f.svc.Assign(ctx, task.ID, f.stranger.ID, f.stranger.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("notification failure does not fail the request", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Best effort")
		f.notifier.Err = assert.AnError

		updated, err := f.svc.Assign(ctx, task.ID, f.owner.ID, f.stranger.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.AssignedTo)
		assert.Equal(t, f.stranger.ID, *updated.AssignedTo)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Done with this")

		require.NoError(t, f.svc.Delete(ctx, task.ID, f.owner.ID))

		_, err := f.svc.Get(ctx, task.ID, f.owner.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("assignee cannot delete", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)
		task := f.addTask(t, "Keep")
		task.AssignedTo = &f.stranger.ID

		err := f.svc.Delete(ctx, task.ID, f.stranger.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("passes filter through to the store", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)

		status := domain.TaskStatusPending
		priority := domain.TaskPriorityHigh
		filter := store.TaskFilter{
			TaskListID:  f.list.ID,
			Status:      &status,
			Priority:    &priority,
			AssignedTo:  &f.stranger.ID,
			OverdueOnly: true,
		}
		page := store.Page{Number: 2, Size: 10}

		_, err := f.svc.List(ctx, f.owner.ID, filter, page)
		require.NoError(t, err)

		assert.Equal(t, filter, f.taskStore.LastFilter)
		assert.Equal(t, page, f.taskStore.LastPage)
	})

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)

		pending := f.addTask(t, "Pending one")
		completed := f.addTask(t, "Completed one")
		completed.Status = domain.TaskStatusCompleted

		status := domain.TaskStatusPending
		tasks, err := f.svc.List(ctx, f.owner.ID, store.TaskFilter{
			TaskListID: f.list.ID,
			Status:     &status,
		}, store.Page{})
		require.NoError(t, err)

		require.Len(t, tasks, 1)
		assert.Equal(t, pending.ID, tasks[0].ID)
	})

	t.Run("foreign list looks absent", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture(t)

		_, err := f.svc.List(ctx, f.stranger.ID, store.TaskFilter{TaskListID: f.list.ID}, store.Page{})
		assert.ErrorIs(t, err, store.ErrTaskListNotFound)
	})
}
