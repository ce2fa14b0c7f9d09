package interfaces

import (
	"context"

	"github.com/clinicdesk/booking/pkg/types"
)

// InboxService defines the interface for a patient's notifications and
// activity log
type InboxService interface {
	GetNotifications(ctx context.Context, patientID string) ([]*types.Notification, error)
	ReadNotification(ctx context.Context, notificationID string) (*types.Notification, error)
	GetLogs(ctx context.Context, patientID string) ([]*types.LogEntry, error)
}

// InboxRepository defines the persistence capability for notifications and
// audit log entries
type InboxRepository interface {
	GetNotifications(ctx context.Context, patient *types.Patient) ([]*types.Notification, error)
	GetNotificationByID(ctx context.Context, id string) (*types.Notification, error)
	SetNotificationSeen(ctx context.Context, notification *types.Notification) (*types.Notification, error)
	DeleteNotification(ctx context.Context, id string) error

	GetLogs(ctx context.Context, patient *types.Patient) ([]*types.LogEntry, error)
	DeleteLog(ctx context.Context, id string) error

	GetPatientByID(ctx context.Context, id string) (*types.Patient, error)
}
