package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskhive/taskhive-api/internal/config"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/platform/logger"
)

// Notifier sends user-facing notifications. The only notification in the
// system today is the task assignment email.
type Notifier interface {
	// NotifyTaskAssigned tells the assignee they have been assigned a task.
	// Implementations must not fail the calling operation: errors are for
	// the caller to log, not to propagate to the client.
	NotifyTaskAssigned(ctx context.Context, assignee *domain.User, task *domain.Task) error
}

// EmailNotifier is a simulated email sender. It formats the assignment
// message the way a real SMTP sender would and logs the send instead of
// delivering it. The SMTP settings in config are carried for the eventual
// real implementation.
type EmailNotifier struct {
	cfg    config.EmailConfig
	logger *slog.Logger
}

// NewEmailNotifier creates an EmailNotifier from the email configuration.
// If logger is nil, a default logger will be used.
func NewEmailNotifier(cfg config.EmailConfig, logger *slog.Logger) *EmailNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &EmailNotifier{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "email_notifier")),
	}
}

// Ensure EmailNotifier implements Notifier interface
var _ Notifier = (*EmailNotifier)(nil)

// NotifyTaskAssigned implements Notifier.NotifyTaskAssigned.
// Disabled notifications are a silent no-op.
func (n *EmailNotifier) NotifyTaskAssigned(ctx context.Context, assignee *domain.User, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, n.logger)

	if !n.cfg.Enabled {
		log.Debug("email notifications are disabled")
		return nil
	}

	subject := fmt.Sprintf("Task Assigned: %s", task.Title)
	body := fmt.Sprintf("You have been assigned a new task: %s", task.Title)
	if task.Description != "" {
		body += "\n\nDescription: " + task.Description
	}

	// Simulated send: a real implementation would talk to the configured
	// SMTP server here.
	log.Info("sending assignment email",
		slog.String("to", assignee.Email),
		slog.String("from", n.cfg.FromAddress),
		slog.String("subject", subject),
		slog.String("task_id", task.ID.String()),
		slog.Int("body_length", len(body)))

	return nil
}
