package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/api/shared"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/platform/logger"
	"github.com/taskhive/taskhive-api/internal/store"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context. The user ID is placed in the context by the
// authentication middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID extracts a UUID from the URL path parameters.
// Returns a ValidationError naming the parameter when it is missing or
// malformed.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleUserIDAndPathUUID extracts both the authenticated user ID and a UUID
// path parameter, writing the error response itself if either fails.
// The boolean result reports whether both extractions succeeded.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// parsePage reads the page and size query parameters. Missing or
// out-of-range values are normalized to the defaults by the store layer;
// non-numeric values are a validation error.
func parsePage(r *http.Request) (store.Page, error) {
	page := store.Page{}

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, domain.NewValidationError("page", "must be an integer", domain.ErrValidation)
		}
		page.Number = n
	}

	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, domain.NewValidationError("size", "must be an integer", domain.ErrValidation)
		}
		page.Size = n
	}

	return page.Normalize(), nil
}

// parseTaskFilter reads the task filter query parameters. The task_list_id
// parameter is required; the rest are optional narrowing criteria.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	filter := store.TaskFilter{}
	query := r.URL.Query()

	rawListID := query.Get("task_list_id")
	if rawListID == "" {
		return filter, domain.NewValidationError("task_list_id", "is required", domain.ErrValidation)
	}
	listID, err := uuid.Parse(rawListID)
	if err != nil {
		return filter, domain.NewValidationError("task_list_id", "has invalid format", domain.ErrInvalidID)
	}
	filter.TaskListID = listID

	if raw := query.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.IsValid() {
			return filter, domain.ErrInvalidStatus
		}
		filter.Status = &status
	}

	if raw := query.Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !priority.IsValid() {
			return filter, domain.ErrInvalidPriority
		}
		filter.Priority = &priority
	}

	if raw := query.Get("assigned_to"); raw != "" {
		assigneeID, err := uuid.Parse(raw)
		if err != nil {
			return filter, domain.NewValidationError("assigned_to", "has invalid format", domain.ErrInvalidID)
		}
		filter.AssignedTo = &assigneeID
	}

	if raw := query.Get("overdue_only"); raw != "" {
		overdue, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, domain.NewValidationError("overdue_only", "must be a boolean", domain.ErrValidation)
		}
		filter.OverdueOnly = overdue
	}

	return filter, nil
}
