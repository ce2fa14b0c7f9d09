package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/clinicdesk/booking/pkg/database"
	"github.com/clinicdesk/booking/pkg/interfaces"
	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/repository"
	"github.com/clinicdesk/booking/pkg/types"
)

// uniqueViolation is the Postgres error code for a unique constraint breach
const uniqueViolation = "23505"

// Repository implements AccountsRepository backed by PostgreSQL
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new accounts repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.AccountsRepository {
	return &Repository{db: db, logger: log}
}

// RegisterPatient inserts a new patient row, assigning its identity. A
// duplicate email is reported as an email-in-use conflict.
func (r *Repository) RegisterPatient(ctx context.Context, patient *types.Patient) (*types.Patient, error) {
	if err := repository.CheckPatient(patient); err != nil {
		return nil, err
	}

	patient.ID = uuid.New().String()

	query := `
		INSERT INTO patients (id, doctor_id, email, pass_hash, first_name, middle_name, last_name, date_of_birth, gender, phone_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	start := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		patient.ID,
		patient.DoctorID,
		patient.Email,
		patient.PassHash,
		patient.FirstName,
		patient.MiddleName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.PhoneNo,
	).Scan(&patient.CreatedAt)
	repository.Observe(r.logger, start, "insert", "patients", err)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return nil, types.NewConflictError(types.CodeEmailInUse, "email is already in use")
		}
		r.logger.WithError(err).Error("Failed to insert patient")
		return nil, types.NewStorageError("failed to register patient", err)
	}

	return patient, nil
}

// GetPatientByID retrieves a patient by ID
func (r *Repository) GetPatientByID(ctx context.Context, id string) (*types.Patient, error) {
	return repository.QueryPatient(ctx, r.db, r.logger, `WHERE id = $1`, id)
}

// GetPatientByEmail retrieves a patient by email. An unknown email is
// reported as user-not-found rather than patient-not-found, since it is a
// credential lookup.
func (r *Repository) GetPatientByEmail(ctx context.Context, email string) (*types.Patient, error) {
	patient, err := repository.QueryPatient(ctx, r.db, r.logger, `WHERE email = $1`, email)
	if err != nil {
		if e, ok := types.AsError(err); ok && e.Code == types.CodePatientNotFound {
			return nil, types.NewNotFoundError(types.CodeUserNotFound, "no account with that email")
		}
		return nil, err
	}
	return patient, nil
}

// UpdatePatient updates a patient's profile fields
func (r *Repository) UpdatePatient(ctx context.Context, patient *types.Patient) (*types.Patient, error) {
	if err := repository.CheckPatient(patient); err != nil {
		return nil, err
	}

	query := `
		UPDATE patients
		SET email = $2, first_name = $3, middle_name = $4, last_name = $5,
		    date_of_birth = $6, gender = $7, phone_no = $8
		WHERE id = $1`

	start := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.Email,
		patient.FirstName,
		patient.MiddleName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.PhoneNo,
	)
	repository.Observe(r.logger, start, "update", "patients", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to update patient")
		return nil, types.NewStorageError("failed to update patient", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, types.NewNotFoundError(types.CodePatientNotFound, "patient not found")
	}

	return patient, nil
}

// ChangeDoctor reassigns the patient's doctor reference
func (r *Repository) ChangeDoctor(ctx context.Context, patient *types.Patient, doctor *types.Doctor) error {
	start := time.Now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE patients SET doctor_id = $2 WHERE id = $1`, patient.ID, doctor.ID)
	repository.Observe(r.logger, start, "update", "patients", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to change patient doctor")
		return types.NewStorageError("failed to change doctor", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return types.NewNotFoundError(types.CodePatientNotFound, "patient not found")
	}

	patient.DoctorID = doctor.ID
	return nil
}

// DeletePatient removes a patient account
func (r *Repository) DeletePatient(ctx context.Context, id string) error {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	repository.Observe(r.logger, start, "delete", "patients", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete patient")
		return types.NewStorageError("failed to delete patient", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return types.NewNotFoundError(types.CodePatientNotFound, "patient not found")
	}

	return nil
}

// GetDoctorByID retrieves a doctor by ID
func (r *Repository) GetDoctorByID(ctx context.Context, id string) (*types.Doctor, error) {
	return repository.QueryDoctor(ctx, r.db, r.logger, `WHERE id = $1`, id)
}

// GetDoctorForPatient retrieves the doctor a patient is registered with
func (r *Repository) GetDoctorForPatient(ctx context.Context, patient *types.Patient) (*types.Doctor, error) {
	return repository.QueryDoctor(ctx, r.db, r.logger, `WHERE id = $1`, patient.DoctorID)
}

// GetDoctors returns all doctors, in insertion order
func (r *Repository) GetDoctors(ctx context.Context) ([]*types.Doctor, error) {
	query := `SELECT id, email, first_name, middle_name, last_name, date_of_birth, gender, phone_no FROM doctors ORDER BY last_name, first_name`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	repository.Observe(r.logger, start, "select", "doctors", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to query doctors")
		return nil, types.NewStorageError("failed to get doctors", err)
	}
	defer rows.Close()

	var doctors []*types.Doctor
	for rows.Next() {
		doctor := &types.Doctor{}
		if err := rows.Scan(
			&doctor.ID,
			&doctor.Email,
			&doctor.FirstName,
			&doctor.MiddleName,
			&doctor.LastName,
			&doctor.DateOfBirth,
			&doctor.Gender,
			&doctor.PhoneNo,
		); err != nil {
			return nil, types.NewStorageError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("failed to read doctors", err)
	}

	return doctors, nil
}

// CreateNotification persists an inbox notification for the patient
func (r *Repository) CreateNotification(ctx context.Context, patient *types.Patient, header, message string) (*types.Notification, error) {
	return repository.InsertNotification(ctx, r.db, r.logger, patient, header, message)
}

// CreateLog persists an activity log entry for the patient
func (r *Repository) CreateLog(ctx context.Context, patient *types.Patient, message string) (*types.LogEntry, error) {
	return repository.InsertLog(ctx, r.db, r.logger, patient, message)
}
