// Package repository holds the SQL helpers shared by the per-area
// repositories: patient and doctor row queries, and the notification and
// audit log inserts every business operation ends with.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/booking/pkg/database"
	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/monitoring"
	"github.com/clinicdesk/booking/pkg/types"
)

const patientColumns = `id, doctor_id, email, pass_hash, first_name, middle_name, last_name, date_of_birth, gender, phone_no, created_at`

const doctorColumns = `id, email, first_name, middle_name, last_name, date_of_birth, gender, phone_no`

// Observe records the duration and outcome of a database query in the
// metrics and the structured log. A query that found no rows still
// completed, so sql.ErrNoRows counts as success.
func Observe(log *logger.Logger, start time.Time, queryType, table string, err error) {
	elapsed := time.Since(start)
	monitoring.RecordDBQuery(queryType, table, elapsed)
	log.DatabaseOperation(queryType, table, elapsed.Milliseconds(), err == nil || err == sql.ErrNoRows)
}

// QueryPatient fetches a single patient row matching the WHERE clause
func QueryPatient(ctx context.Context, db *database.DB, log *logger.Logger, where string, args ...interface{}) (*types.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ` + where

	patient := &types.Patient{}
	start := time.Now()
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&patient.ID,
		&patient.DoctorID,
		&patient.Email,
		&patient.PassHash,
		&patient.FirstName,
		&patient.MiddleName,
		&patient.LastName,
		&patient.DateOfBirth,
		&patient.Gender,
		&patient.PhoneNo,
		&patient.CreatedAt,
	)
	Observe(log, start, "select", "patients", err)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.CodePatientNotFound, "patient not found")
		}
		log.WithError(err).Error("Failed to get patient")
		return nil, types.NewStorageError("failed to get patient", err)
	}

	return patient, nil
}

// QueryDoctor fetches a single doctor row matching the WHERE clause
func QueryDoctor(ctx context.Context, db *database.DB, log *logger.Logger, where string, args ...interface{}) (*types.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ` + where

	doctor := &types.Doctor{}
	start := time.Now()
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&doctor.ID,
		&doctor.Email,
		&doctor.FirstName,
		&doctor.MiddleName,
		&doctor.LastName,
		&doctor.DateOfBirth,
		&doctor.Gender,
		&doctor.PhoneNo,
	)
	Observe(log, start, "select", "doctors", err)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.CodeDoctorNotFound, "doctor not found")
		}
		log.WithError(err).Error("Failed to get doctor")
		return nil, types.NewStorageError("failed to get doctor", err)
	}

	return doctor, nil
}

// InsertNotification persists a new unread notification for a patient,
// assigning its identity at the storage boundary.
func InsertNotification(ctx context.Context, db *database.DB, log *logger.Logger, patient *types.Patient, header, message string) (*types.Notification, error) {
	if patient == nil || patient.ID == "" {
		return nil, types.NewInternalError("notification requires a patient", nil)
	}

	notification := &types.Notification{
		ID:        uuid.New().String(),
		PatientID: patient.ID,
		Header:    header,
		Message:   message,
		CreatedAt: time.Now(),
		Unread:    true,
	}

	query := `
		INSERT INTO notifications (id, patient_id, header, message, created_at, unread)
		VALUES ($1, $2, $3, $4, $5, $6)`

	start := time.Now()
	_, err := db.ExecContext(ctx, query,
		notification.ID,
		notification.PatientID,
		notification.Header,
		notification.Message,
		notification.CreatedAt,
		notification.Unread,
	)
	Observe(log, start, "insert", "notifications", err)
	if err != nil {
		log.WithError(err).Error("Failed to create notification")
		return nil, types.NewStorageError("failed to create notification", err)
	}

	return notification, nil
}

// InsertLog appends an audit log entry for a patient, assigning its
// identity at the storage boundary.
func InsertLog(ctx context.Context, db *database.DB, log *logger.Logger, patient *types.Patient, message string) (*types.LogEntry, error) {
	if patient == nil || patient.ID == "" {
		return nil, types.NewInternalError("log entry requires a patient", nil)
	}

	entry := &types.LogEntry{
		ID:        uuid.New().String(),
		PatientID: patient.ID,
		Message:   message,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO logs (id, patient_id, message, created_at)
		VALUES ($1, $2, $3, $4)`

	start := time.Now()
	_, err := db.ExecContext(ctx, query,
		entry.ID,
		entry.PatientID,
		entry.Message,
		entry.CreatedAt,
	)
	Observe(log, start, "insert", "logs", err)
	if err != nil {
		log.WithError(err).Error("Failed to create log entry")
		return nil, types.NewStorageError("failed to create log entry", err)
	}

	return entry, nil
}

// CheckPatient validates the write-time invariants for a patient record:
// required fields present and date of birth never in the future.
func CheckPatient(patient *types.Patient) error {
	if patient == nil {
		return types.NewInternalError("patient is required", nil)
	}
	if patient.Email == "" || patient.PassHash == "" || patient.FirstName == "" || patient.LastName == "" {
		return types.NewInternalError("patient record is missing required fields", nil)
	}
	if patient.DateOfBirth.After(time.Now()) {
		return types.NewInternalError("patient date of birth is in the future", nil)
	}
	return nil
}
