package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Username string `json:"username"  validate:"required,min=3,max=50"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
// The email field accepts either the account's email or its username.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// TokenResponse defines the successful response for the login endpoint.
type TokenResponse struct {
	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int64 `json:"expires_in"`
}

// UserResponse defines the public representation of a user account.
// It never carries password material.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskListRequest defines the payload for creating a task list.
type CreateTaskListRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// UpdateTaskListRequest defines the payload for updating a task list.
// Nil fields are left unchanged.
type UpdateTaskListRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// TaskListResponse defines the representation of a task list, including the
// derived task counts and completion percentage.
type TaskListResponse struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	OwnerID              uuid.UUID `json:"owner_id"`
	TaskCount            int       `json:"task_count"`
	CompletionPercentage float64   `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TaskListDetailResponse extends TaskListResponse with the list's tasks.
type TaskListDetailResponse struct {
	TaskListResponse
	Tasks []TaskResponse `json:"tasks"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	TaskListID  uuid.UUID  `json:"task_list_id" validate:"required"`
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=1000"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	AssignedTo  *uuid.UUID `json:"assigned_to" validate:"omitempty"`
	DueDate     *time.Time `json:"due_date"    validate:"omitempty"`
}

// UpdateTaskRequest defines the payload for updating a task.
// Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	AssignedTo  *uuid.UUID `json:"assigned_to" validate:"omitempty"`
	DueDate     *time.Time `json:"due_date"    validate:"omitempty"`
}

// UpdateTaskStatusRequest defines the payload for the task status endpoint.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// TaskResponse defines the representation of a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	TaskListID  uuid.UUID  `json:"task_list_id"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsOverdue   bool       `json:"is_overdue"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// newUserResponse builds a UserResponse from a domain user.
func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// newTaskListResponse builds a TaskListResponse from a domain task list.
func newTaskListResponse(list *domain.TaskList) TaskListResponse {
	return TaskListResponse{
		ID:                   list.ID,
		Name:                 list.Name,
		Description:          list.Description,
		OwnerID:              list.OwnerID,
		TaskCount:            list.TaskCount,
		CompletionPercentage: list.CompletionPercentage(),
		CreatedAt:            list.CreatedAt,
		UpdatedAt:            list.UpdatedAt,
	}
}

// newTaskResponse builds a TaskResponse from a domain task. The overdue flag
// is derived relative to now.
func newTaskResponse(task *domain.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		TaskListID:  task.TaskListID,
		AssignedTo:  task.AssignedTo,
		DueDate:     task.DueDate,
		IsOverdue:   task.IsOverdue(now),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// newTaskResponses builds TaskResponses for a slice of tasks.
// Returns an empty slice, not nil, so the JSON encodes as [].
func newTaskResponses(tasks []*domain.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t, now))
	}
	return out
}

// newTaskListResponses builds TaskListResponses for a slice of lists.
func newTaskListResponses(lists []*domain.TaskList) []TaskListResponse {
	out := make([]TaskListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, newTaskListResponse(l))
	}
	return out
}
