package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/booking/pkg/database"
	"github.com/clinicdesk/booking/pkg/interfaces"
	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/repository"
	"github.com/clinicdesk/booking/pkg/types"
)

// Repository implements the BookingRepository interface over Postgres
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new booking repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.BookingRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateBooking persists a new booking, assigning its identity and creation
// time at the storage boundary.
func (r *Repository) CreateBooking(ctx context.Context, patient *types.Patient, doctor *types.Doctor, bookingTime time.Time, bookingType string) (*types.Booking, error) {
	if err := checkBookingRefs(patient, doctor, bookingTime, bookingType); err != nil {
		return nil, err
	}

	booking := &types.Booking{
		ID:          uuid.New().String(),
		DoctorID:    doctor.ID,
		PatientID:   patient.ID,
		BookingTime: bookingTime,
		CreatedAt:   time.Now(),
		Type:        bookingType,
	}

	query := `
		INSERT INTO bookings (id, doctor_id, patient_id, booking_time, created_at, type, details, prescription)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	start := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.DoctorID,
		booking.PatientID,
		booking.BookingTime,
		booking.CreatedAt,
		booking.Type,
		booking.Details,
		booking.Prescription,
	)
	repository.Observe(r.logger, start, "insert", "bookings", err)
	if err != nil {
		r.logger.WithError(err).Error("Failed to create booking")
		return nil, types.NewStorageError("failed to create booking", err)
	}

	r.logger.Infof("Created booking %s for patient %s with doctor %s", booking.ID, booking.PatientID, booking.DoctorID)
	return booking, nil
}

// GetBookingByID retrieves a booking by ID
func (r *Repository) GetBookingByID(ctx context.Context, id string) (*types.Booking, error) {
	query := `
		SELECT id, doctor_id, patient_id, booking_time, created_at, type, details, prescription
		FROM bookings
		WHERE id = $1`

	booking := &types.Booking{}
	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.DoctorID,
		&booking.PatientID,
		&booking.BookingTime,
		&booking.CreatedAt,
		&booking.Type,
		&booking.Details,
		&booking.Prescription,
	)
	repository.Observe(r.logger, start, "select", "bookings", err)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.CodeBookingNotFound, "booking not found: "+id)
		}
		r.logger.WithError(err).Errorf("Failed to get booking %s", id)
		return nil, types.NewStorageError("failed to get booking", err)
	}

	return booking, nil
}

// GetBookings retrieves all of a patient's bookings in insertion order
func (r *Repository) GetBookings(ctx context.Context, patient *types.Patient) ([]*types.Booking, error) {
	if patient == nil {
		return nil, types.NewInternalError("patient is required", nil)
	}

	query := `
		SELECT id, doctor_id, patient_id, booking_time, created_at, type, details, prescription
		FROM bookings
		WHERE patient_id = $1
		ORDER BY seq`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, patient.ID)
	repository.Observe(r.logger, start, "select", "bookings", err)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to get bookings for patient %s", patient.ID)
		return nil, types.NewStorageError("failed to get bookings", err)
	}
	defer rows.Close()

	bookings := []*types.Booking{}
	for rows.Next() {
		booking := &types.Booking{}
		if err := rows.Scan(
			&booking.ID,
			&booking.DoctorID,
			&booking.PatientID,
			&booking.BookingTime,
			&booking.CreatedAt,
			&booking.Type,
			&booking.Details,
			&booking.Prescription,
		); err != nil {
			return nil, types.NewStorageError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("failed to iterate bookings", err)
	}

	return bookings, nil
}

// UpdateBooking persists a mutated booking, preserving its identity
func (r *Repository) UpdateBooking(ctx context.Context, booking *types.Booking) (*types.Booking, error) {
	if booking == nil {
		return nil, types.NewInternalError("booking is required", nil)
	}
	if err := checkBooking(booking); err != nil {
		return nil, err
	}

	query := `
		UPDATE bookings
		SET booking_time = $1, type = $2, details = $3, prescription = $4
		WHERE id = $5`

	start := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		booking.BookingTime,
		booking.Type,
		booking.Details,
		booking.Prescription,
		booking.ID,
	)
	repository.Observe(r.logger, start, "update", "bookings", err)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to update booking %s", booking.ID)
		return nil, types.NewStorageError("failed to update booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, types.NewStorageError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, types.NewNotFoundError(types.CodeBookingNotFound, "booking not found: "+booking.ID)
	}

	r.logger.Infof("Updated booking %s", booking.ID)
	return booking, nil
}

// DeleteBooking removes a booking. Administrative operation; the booking
// engine itself never deletes.
func (r *Repository) DeleteBooking(ctx context.Context, id string) error {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	repository.Observe(r.logger, start, "delete", "bookings", err)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to delete booking %s", id)
		return types.NewStorageError("failed to delete booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return types.NewStorageError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return types.NewNotFoundError(types.CodeBookingNotFound, "booking not found: "+id)
	}

	return nil
}

// GetPatientByID retrieves a patient by ID
func (r *Repository) GetPatientByID(ctx context.Context, id string) (*types.Patient, error) {
	return repository.QueryPatient(ctx, r.db, r.logger, `WHERE id = $1`, id)
}

// GetDoctorForPatient retrieves the doctor a patient is registered with
func (r *Repository) GetDoctorForPatient(ctx context.Context, patient *types.Patient) (*types.Doctor, error) {
	if patient == nil {
		return nil, types.NewInternalError("patient is required", nil)
	}
	return repository.QueryDoctor(ctx, r.db, r.logger, `WHERE id = $1`, patient.DoctorID)
}

// CreateNotification persists a notification for a patient
func (r *Repository) CreateNotification(ctx context.Context, patient *types.Patient, header, message string) (*types.Notification, error) {
	return repository.InsertNotification(ctx, r.db, r.logger, patient, header, message)
}

// CreateLog appends an audit log entry for a patient
func (r *Repository) CreateLog(ctx context.Context, patient *types.Patient, message string) (*types.LogEntry, error) {
	return repository.InsertLog(ctx, r.db, r.logger, patient, message)
}

// checkBookingRefs validates the write-time invariants for a new booking:
// patient, doctor, time and type must all be present.
func checkBookingRefs(patient *types.Patient, doctor *types.Doctor, bookingTime time.Time, bookingType string) error {
	if patient == nil || patient.ID == "" {
		return types.NewInternalError("booking requires a patient", nil)
	}
	if doctor == nil || doctor.ID == "" {
		return types.NewInternalError("booking requires a doctor", nil)
	}
	if bookingTime.IsZero() {
		return types.NewInternalError("booking requires a booking time", nil)
	}
	if bookingType == "" {
		return types.NewInternalError("booking requires a type", nil)
	}
	return nil
}

// checkBooking validates the write-time invariants for a persisted booking
func checkBooking(booking *types.Booking) error {
	if booking.PatientID == "" || booking.DoctorID == "" {
		return types.NewInternalError("booking requires patient and doctor references", nil)
	}
	if booking.BookingTime.IsZero() {
		return types.NewInternalError("booking requires a booking time", nil)
	}
	if booking.Type == "" {
		return types.NewInternalError("booking requires a type", nil)
	}
	return nil
}
