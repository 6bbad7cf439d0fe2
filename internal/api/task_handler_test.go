package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/domain"
)

func TestTaskCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates task with defaults", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")

		w := f.do(t, f.owner.ID, http.MethodPost, "/api/tasks", map[string]interface{}{
			"task_list_id": list.ID,
			"title":        "Write docs",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp TaskResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Write docs", resp.Title)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "medium", resp.Priority)
		assert.False(t, resp.IsOverdue)
	})

	t.Run("creates assigned task and notifies", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")

		w := f.do(t, f.owner.ID, http.MethodPost, "/api/tasks", map[string]interface{}{
			"task_list_id": list.ID,
			"title":        "Review PR",
			"priority":     "high",
			"assigned_to":  f.stranger.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp TaskResponse
		decodeBody(t, w, &resp)
		require.NotNil(t, resp.AssignedTo)
		assert.Equal(t, f.stranger.ID, *resp.AssignedTo)
		require.Len(t, f.notifier.Notifications, 1)
	})

	t.Run("rejects bad priority", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")

		w := f.do(t, f.owner.ID, http.MethodPost, "/api/tasks", map[string]interface{}{
			"task_list_id": list.ID,
			"title":        "Bad",
			"priority":     "urgent",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("foreign list is 404", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Private")

		w := f.do(t, f.stranger.ID, http.MethodPost, "/api/tasks", map[string]interface{}{
			"task_list_id": list.ID,
			"title":        "Sneaky",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskListEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("requires task_list_id", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)

		w := f.do(t, f.owner.ID, http.MethodGet, "/api/tasks", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "task_list_id")
	})

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")

		f.addTask(t, list.ID, "Open")
		done := f.addTask(t, list.ID, "Done")
		done.Status = domain.TaskStatusCompleted

		w := f.do(t, f.owner.ID, http.MethodGet, "/api/tasks?task_list_id="+list.ID.String()+"&status=completed", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []TaskResponse
		decodeBody(t, w, &resp)
		require.Len(t, resp, 1)
		assert.Equal(t, "Done", resp[0].Title)
	})

	t.Run("rejects bad status value", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")

		w := f.do(t, f.owner.ID, http.MethodGet, "/api/tasks?task_list_id="+list.ID.String()+"&status=done", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid task status")
	})

	t.Run("rejects non-numeric page", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")

		w := f.do(t, f.owner.ID, http.MethodGet, "/api/tasks?task_list_id="+list.ID.String()+"&page=two", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskGet(t *testing.T) {
	t.Parallel()

	t.Run("marks overdue task", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")
		task := f.addTask(t, list.ID, "Late")
		past := time.Now().UTC().Add(-time.Hour)
		task.DueDate = &past

		w := f.do(t, f.owner.ID, http.MethodGet, "/api/tasks/"+task.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp TaskResponse
		decodeBody(t, w, &resp)
		assert.True(t, resp.IsOverdue)
	})

	t.Run("stranger gets 404", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")
		task := f.addTask(t, list.ID, "Hidden")

		w := f.do(t, f.stranger.ID, http.MethodGet, "/api/tasks/"+task.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Task not found")
	})
}

func TestTaskUpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("owner completes task", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")
		task := f.addTask(t, list.ID, "Finish me")

		w := f.do(t, f.owner.ID, http.MethodPatch, "/api/tasks/"+task.ID.String()+"/status", map[string]string{
			"status": "completed",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp TaskResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("assignee updates status", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")
		task := f.addTask(t, list.ID, "Delegated")
		task.AssignedTo = &f.stranger.ID

		w := f.do(t, f.stranger.ID, http.MethodPatch, "/api/tasks/"+task.ID.String()+"/status", map[string]string{
			"status": "in_progress",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")
		task := f.addTask(t, list.ID, "Enum only")

		w := f.do(t, f.owner.ID, http.MethodPatch, "/api/tasks/"+task.ID.String()+"/status", map[string]string{
			"status": "archived",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskAssign(t *testing.T) {
	t.Parallel()

	t.Run("owner assigns and reassigns", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")
		task := f.addTask(t, list.ID, "Handover")

		w := f.do(t, f.owner.ID, http.MethodPost,
			"/api/tasks/"+task.ID.String()+"/assign/"+f.stranger.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp TaskResponse
		decodeBody(t, w, &resp)
		require.NotNil(t, resp.AssignedTo)
		assert.Equal(t, f.stranger.ID, *resp.AssignedTo)
		require.Len(t, f.notifier.Notifications, 1)
	})

	t.Run("unknown assignee is 404", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")
		task := f.addTask(t, list.ID, "Nobody home")

		w := f.do(t, f.owner.ID, http.MethodPost,
			"/api/tasks/"+task.ID.String()+"/assign/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})

	t.Run("inactive assignee is 400", func(t *testing.T) {
		t.Parallel()
		f := newHandlerFixture(t)
		list := f.addList(t, f.owner.ID, "Sprint")
		task := f.addTask(t, list.ID, "Inactive target")
		f.stranger.IsActive = false

		w := f.do(t, f.owner.ID, http.MethodPost,
			"/api/tasks/"+task.ID.String()+"/assign/"+f.stranger.ID.String(), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "inactive")
	})
}

func TestTaskDelete(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture(t)
	list := f.addList(t, f.owner.ID, "Sprint")
	task := f.addTask(t, list.ID, "Gone soon")

	// Assignee cannot delete.
	task.AssignedTo = &f.stranger.ID
	w := f.do(t, f.stranger.ID, http.MethodDelete, "/api/tasks/"+task.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, f.owner.ID, http.MethodDelete, "/api/tasks/"+task.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, f.taskStore.Tasks, task.ID)
}
