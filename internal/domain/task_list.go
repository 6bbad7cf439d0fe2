package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for TaskList
var (
	ErrEmptyTaskListID     = errors.New("task list ID cannot be empty")
	ErrEmptyTaskListOwner  = errors.New("task list owner ID cannot be empty")
	ErrEmptyTaskListName   = errors.New("task list name cannot be empty")
	ErrTaskListNameTooLong = errors.New("task list name must be at most 100 characters")
	ErrTaskListDescTooLong = errors.New("task list description must be at most 500 characters")
)

// TaskList represents a named collection of tasks owned by a single user.
// TaskCount and CompletedCount are derived values populated on read; they
// are never stored.
type TaskList struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Derived counts over contained tasks, populated by list queries.
	TaskCount      int `json:"task_count"`
	CompletedCount int `json:"-"`
}

// NewTaskList creates a new TaskList owned by the given user.
// It generates a new UUID for the list ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewTaskList(ownerID uuid.UUID, name, description string) (*TaskList, error) {
	list := &TaskList{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	return list, nil
}

// Validate checks if the TaskList has valid data.
// Returns an error if any field fails validation.
func (l *TaskList) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyTaskListID
	}

	if l.OwnerID == uuid.Nil {
		return ErrEmptyTaskListOwner
	}

	if l.Name == "" {
		return ErrEmptyTaskListName
	}

	if len(l.Name) > 100 {
		return ErrTaskListNameTooLong
	}

	if len(l.Description) > 500 {
		return ErrTaskListDescTooLong
	}

	return nil
}

// CompletionPercentage returns the fraction of contained tasks that are
// completed, expressed as a percentage rounded to one decimal.
// A list with no tasks is 0 percent complete.
func (l *TaskList) CompletionPercentage() float64 {
	if l.TaskCount == 0 {
		return 0
	}

	pct := float64(l.CompletedCount) / float64(l.TaskCount) * 100
	return math.Round(pct*10) / 10
}
