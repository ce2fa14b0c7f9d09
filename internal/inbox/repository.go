package inbox

import (
	"context"
	"database/sql"
	"time"

	"github.com/clinicdesk/booking/pkg/database"
	"github.com/clinicdesk/booking/pkg/interfaces"
	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/repository"
	"github.com/clinicdesk/booking/pkg/types"
)

// Repository implements InboxRepository backed by PostgreSQL
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new inbox repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.InboxRepository {
	return &Repository{db: db, logger: log}
}

// GetNotifications returns a patient's notifications in insertion order
func (r *Repository) GetNotifications(ctx context.Context, patient *types.Patient) ([]*types.Notification, error) {
	query := `
		SELECT id, patient_id, header, message, created_at, unread
		FROM notifications
		WHERE patient_id = $1
		ORDER BY seq`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, patient.ID)
	repository.Observe(r.logger, start, "select", "notifications", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to query notifications")
		return nil, types.NewStorageError("failed to get notifications", err)
	}
	defer rows.Close()

	var notifications []*types.Notification
	for rows.Next() {
		n := &types.Notification{}
		if err := rows.Scan(&n.ID, &n.PatientID, &n.Header, &n.Message, &n.CreatedAt, &n.Unread); err != nil {
			return nil, types.NewStorageError("failed to scan notification", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("failed to read notifications", err)
	}

	return notifications, nil
}

// GetNotificationByID retrieves a single notification
func (r *Repository) GetNotificationByID(ctx context.Context, id string) (*types.Notification, error) {
	query := `
		SELECT id, patient_id, header, message, created_at, unread
		FROM notifications
		WHERE id = $1`

	n := &types.Notification{}
	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.PatientID, &n.Header, &n.Message, &n.CreatedAt, &n.Unread)
	repository.Observe(r.logger, start, "select", "notifications", err)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.CodeNotificationNotFound, "notification not found")
		}
		r.logger.WithError(err).Error("Failed to query notification")
		return nil, types.NewStorageError("failed to get notification", err)
	}

	return n, nil
}

// SetNotificationSeen marks a notification as read
func (r *Repository) SetNotificationSeen(ctx context.Context, notification *types.Notification) (*types.Notification, error) {
	start := time.Now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET unread = FALSE WHERE id = $1`, notification.ID)
	repository.Observe(r.logger, start, "update", "notifications", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to mark notification seen")
		return nil, types.NewStorageError("failed to mark notification seen", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, types.NewNotFoundError(types.CodeNotificationNotFound, "notification not found")
	}

	notification.Unread = false
	return notification, nil
}

// DeleteNotification removes a notification
func (r *Repository) DeleteNotification(ctx context.Context, id string) error {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	repository.Observe(r.logger, start, "delete", "notifications", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete notification")
		return types.NewStorageError("failed to delete notification", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return types.NewNotFoundError(types.CodeNotificationNotFound, "notification not found")
	}

	return nil
}

// GetLogs returns a patient's activity log entries in insertion order
func (r *Repository) GetLogs(ctx context.Context, patient *types.Patient) ([]*types.LogEntry, error) {
	query := `
		SELECT id, patient_id, message, created_at
		FROM logs
		WHERE patient_id = $1
		ORDER BY seq`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, patient.ID)
	repository.Observe(r.logger, start, "select", "logs", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to query logs")
		return nil, types.NewStorageError("failed to get logs", err)
	}
	defer rows.Close()

	var entries []*types.LogEntry
	for rows.Next() {
		entry := &types.LogEntry{}
		if err := rows.Scan(&entry.ID, &entry.PatientID, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, types.NewStorageError("failed to scan log entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("failed to read logs", err)
	}

	return entries, nil
}

// DeleteLog removes an activity log entry
func (r *Repository) DeleteLog(ctx context.Context, id string) error {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, `DELETE FROM logs WHERE id = $1`, id)
	repository.Observe(r.logger, start, "delete", "logs", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete log entry")
		return types.NewStorageError("failed to delete log entry", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return types.NewNotFoundError(types.CodeLogNotFound, "log entry not found")
	}

	return nil
}

// GetPatientByID retrieves a patient by ID
func (r *Repository) GetPatientByID(ctx context.Context, id string) (*types.Patient, error) {
	return repository.QueryPatient(ctx, r.db, r.logger, `WHERE id = $1`, id)
}
