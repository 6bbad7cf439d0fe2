package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/platform/logger"
	"github.com/taskhive/taskhive-api/internal/service"
)

// TaskListHandler handles task list CRUD requests.
type TaskListHandler struct {
	taskListService *service.TaskListService
	validator       *validator.Validate
	logger          *slog.Logger
	timeFunc        func() time.Time
}

// NewTaskListHandler creates a new TaskListHandler.
func NewTaskListHandler(
	taskListService *service.TaskListService,
	logger *slog.Logger,
) *TaskListHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskListHandler")
	}

	return &TaskListHandler{
		taskListService: taskListService,
		validator:       validator.New(),
		logger:          logger.With(slog.String("component", "task_list_handler")),
		timeFunc:        time.Now,
	}
}

// Create handles POST /task-lists requests.
func (h *TaskListHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskListRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	list, err := h.taskListService.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newTaskListResponse(list))
}

// List handles GET /task-lists requests. Results are paginated and include
// the derived completion statistics for each list.
func (h *TaskListHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	page, err := parsePage(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	lists, err := h.taskListService.List(r.Context(), userID, page)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponses(lists))
}

// Get handles GET /task-lists/{id} requests. The response carries the list
// together with its tasks.
func (h *TaskListHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	list, tasks, err := h.taskListService.Get(r.Context(), listID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListDetailResponse{
		TaskListResponse: newTaskListResponse(list),
		Tasks:            newTaskResponses(tasks, h.timeFunc().UTC()),
	})
}

// Update handles PUT /task-lists/{id} requests. Absent fields are left
// unchanged.
func (h *TaskListHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskListRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	list, err := h.taskListService.Update(r.Context(), listID, userID, service.TaskListPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(list))
}

// Delete handles DELETE /task-lists/{id} requests. Contained tasks are
// removed with the list.
func (h *TaskListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskListService.Delete(r.Context(), listID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
