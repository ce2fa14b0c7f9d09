// Package inbox implements a patient's notification inbox and activity log.
package inbox

import (
	"context"

	"github.com/clinicdesk/booking/pkg/interfaces"
	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/types"
)

// Service implements the InboxService interface
type Service struct {
	logger *logger.Logger
	repo   interfaces.InboxRepository
}

// NewService creates a new inbox service
func NewService(repo interfaces.InboxRepository, log *logger.Logger) *Service {
	return &Service{logger: log, repo: repo}
}

// GetNotifications returns the patient's notifications in the order they
// were created.
func (s *Service) GetNotifications(ctx context.Context, patientID string) ([]*types.Notification, error) {
	patient, err := s.repo.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetNotifications(ctx, patient)
}

// ReadNotification marks a notification as seen and returns it. Marking an
// already-seen notification again is a no-op.
func (s *Service) ReadNotification(ctx context.Context, notificationID string) (*types.Notification, error) {
	notification, err := s.repo.GetNotificationByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if !notification.Unread {
		return notification, nil
	}

	return s.repo.SetNotificationSeen(ctx, notification)
}

// GetLogs returns the patient's activity log entries in the order they
// were created.
func (s *Service) GetLogs(ctx context.Context, patientID string) ([]*types.LogEntry, error) {
	patient, err := s.repo.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetLogs(ctx, patient)
}
