package mocks

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain"
)

// Notification records a single NotifyTaskAssigned call.
type Notification struct {
	Assignee *domain.User
	Task     *domain.Task
}

// MockNotifier implements service.Notifier for testing.
// The interface compliance check lives in the service package's tests:
// importing service here would close an import cycle through its test
// binary.
type MockNotifier struct {
	// NotifyTaskAssignedFn allows test cases to mock the notification behavior
	NotifyTaskAssignedFn func(ctx context.Context, assignee *domain.User, task *domain.Task) error

	// Notifications records every call handled by the default implementation
	Notifications []Notification

	// Err is returned by the default implementation
	Err error
}

// NotifyTaskAssigned implements the service.Notifier interface
func (m *MockNotifier) NotifyTaskAssigned(ctx context.Context, assignee *domain.User, task *domain.Task) error {
	if m.NotifyTaskAssignedFn != nil {
		return m.NotifyTaskAssignedFn(ctx, assignee, task)
	}

	if m.Err != nil {
		return m.Err
	}

	m.Notifications = append(m.Notifications, Notification{Assignee: assignee, Task: task})
	return nil
}
