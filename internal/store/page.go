package store

import (
	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/domain"
)

// Pagination defaults and bounds enforced server-side.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page describes an offset/limit window over an ordered result set.
// Number is 1-based; Size is the maximum number of items returned.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page to valid bounds: page numbers below 1 become 1,
// a non-positive size becomes DefaultPageSize, and sizes above MaxPageSize
// are capped.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Limit returns the SQL LIMIT for the page.
func (p Page) Limit() int {
	return p.Size
}

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TaskFilter describes the recognized filter options for task listing.
// TaskListID is an exact-match requirement; the remaining fields impose no
// constraint when unset.
type TaskFilter struct {
	TaskListID  uuid.UUID
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	AssignedTo  *uuid.UUID
	OverdueOnly bool
}
