package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/mocks"
	"github.com/taskhive/taskhive-api/internal/service"
)

// handlerFixture wires real services over mock stores behind a chi router,
// so handler tests exercise routing, authorization, and JSON mapping
// together.
type handlerFixture struct {
	router    chi.Router
	userStore *mocks.MockUserStore
	listStore *mocks.MockTaskListStore
	taskStore *mocks.MockTaskStore
	notifier  *mocks.MockNotifier

	owner    *domain.User
	stranger *domain.User
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	listStore := mocks.NewMockTaskListStore()
	taskStore := mocks.NewMockTaskStore()
	notifier := &mocks.MockNotifier{}

	taskListService, err := service.NewTaskListService(listStore, taskStore, slog.Default())
	require.NoError(t, err)
	taskService, err := service.NewTaskService(taskStore, listStore, userStore, notifier, slog.Default())
	require.NoError(t, err)

	taskListHandler := NewTaskListHandler(taskListService, slog.Default())
	taskHandler := NewTaskHandler(taskService, slog.Default())

	owner, err := domain.NewUser("owner@example.com", "owner", "", "password12345")
	require.NoError(t, err)
	stranger, err := domain.NewUser("stranger@example.com", "stranger", "", "password12345")
	require.NoError(t, err)
	userStore.AddUser(owner)
	userStore.AddUser(stranger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/task-lists", taskListHandler.Create)
		r.Get("/task-lists", taskListHandler.List)
		r.Get("/task-lists/{id}", taskListHandler.Get)
		r.Put("/task-lists/{id}", taskListHandler.Update)
		r.Delete("/task-lists/{id}", taskListHandler.Delete)

		r.Post("/tasks", taskHandler.Create)
		r.Get("/tasks", taskHandler.List)
		r.Get("/tasks/{id}", taskHandler.Get)
		r.Put("/tasks/{id}", taskHandler.Update)
		r.Patch("/tasks/{id}/status", taskHandler.UpdateStatus)
		r.Post("/tasks/{id}/assign/{user_id}", taskHandler.Assign)
		r.Delete("/tasks/{id}", taskHandler.Delete)
	})

	return &handlerFixture{
		router:    r,
		userStore: userStore,
		listStore: listStore,
		taskStore: taskStore,
		notifier:  notifier,
		owner:     owner,
		stranger:  stranger,
	}
}

// do performs a request as the given user, the way the auth middleware
// would have authenticated them.
func (f *handlerFixture) do(t *testing.T, userID uuid.UUID, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *handlerFixture) addList(t *testing.T, ownerID uuid.UUID, name string) *domain.TaskList {
	t.Helper()
	list, err := domain.NewTaskList(ownerID, name, "")
	require.NoError(t, err)
	f.listStore.AddList(list)
	return list
}

func (f *handlerFixture) addTask(t *testing.T, listID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(listID, title, "", "")
	require.NoError(t, err)
	f.taskStore.AddTask(task)
	return task
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
