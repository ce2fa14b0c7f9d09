// Package booking implements the scheduling and query engine for patient
// appointment bookings.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicdesk/booking/internal/validation"
	"github.com/clinicdesk/booking/pkg/interfaces"
	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/monitoring"
	"github.com/clinicdesk/booking/pkg/timefmt"
	"github.com/clinicdesk/booking/pkg/types"
)

// Service implements the BookingService interface. A booking request moves
// through format validation, temporal rules, patient/doctor resolution and
// the per-patient time-slot uniqueness check before anything is written;
// any failed stage aborts with nothing persisted.
type Service struct {
	logger    *logger.Logger
	repo      interfaces.BookingRepository
	validator *validation.Validator
	now       func() time.Time
}

// NewService creates a new booking service
func NewService(repo interfaces.BookingRepository, log *logger.Logger) *Service {
	return &Service{
		logger:    log,
		repo:      repo,
		validator: validation.New(),
		now:       time.Now,
	}
}

// CreateBooking validates a new booking request and commits it. On success
// it emits one notification and one audit log entry for the patient.
func (s *Service) CreateBooking(ctx context.Context, req *types.BookingRequest, patientID string) (*types.Booking, error) {
	s.logger.WithPatientID(patientID).Infof("Creating booking on %s at %s:%s", req.Date, req.Hour, req.Minute)

	bookingTime, err := s.validateRequest(req)
	if err != nil {
		monitoring.RecordBookingOutcome("create", "rejected")
		return nil, err
	}

	patient, err := s.repo.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.repo.GetDoctorForPatient(ctx, patient)
	if err != nil {
		return nil, err
	}

	if err := s.checkSlotIsFree(ctx, patient, bookingTime); err != nil {
		monitoring.RecordBookingOutcome("create", "conflict")
		return nil, err
	}

	booking, err := s.repo.CreateBooking(ctx, patient, doctor, bookingTime, req.Type)
	if err != nil {
		return nil, err
	}

	s.recordSideEffects(ctx, patient,
		"Created New Booking",
		fmt.Sprintf("Created a booking on %s with Dr %s", timefmt.FullDate(booking.BookingTime), doctor.FullName()),
		fmt.Sprintf("Patient %s has scheduled a booking with Dr. %s on %s",
			patient.FullName(), doctor.LastName, timefmt.ShortDateTime(booking.BookingTime)),
	)

	monitoring.RecordBookingOutcome("create", "committed")
	s.logger.WithPatientID(patientID).Infof("Successfully created booking %s", booking.ID)
	return booking, nil
}

// RescheduleBooking moves an existing booking to a new time and type,
// preserving its identity and patient/doctor references. The notification
// and audit log entry name both the old and the new time, so the old
// formatted time is captured before the in-place mutation.
func (s *Service) RescheduleBooking(ctx context.Context, req *types.BookingRequest, patientID string, booking *types.Booking) (*types.Booking, error) {
	s.logger.WithPatientID(patientID).Infof("Rescheduling booking %s to %s at %s:%s", booking.ID, req.Date, req.Hour, req.Minute)

	bookingTime, err := s.validateRequest(req)
	if err != nil {
		monitoring.RecordBookingOutcome("reschedule", "rejected")
		return nil, err
	}

	oldBookingTime := booking.BookingTime
	oldFullDate := timefmt.FullDate(oldBookingTime)

	booking.BookingTime = bookingTime
	booking.Type = req.Type

	patient, err := s.repo.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.repo.GetDoctorForPatient(ctx, patient)
	if err != nil {
		return nil, err
	}

	if err := s.checkSlotIsFree(ctx, patient, booking.BookingTime); err != nil {
		monitoring.RecordBookingOutcome("reschedule", "conflict")
		return nil, err
	}

	updated, err := s.repo.UpdateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.recordSideEffects(ctx, patient,
		"Rescheduled Booking",
		fmt.Sprintf("Changed booking with Dr %s, from %s to %s",
			doctor.FullName(), oldFullDate, timefmt.FullDate(updated.BookingTime)),
		fmt.Sprintf("Patient %s has rescheduled a booking with Dr. %s from %s to %s",
			patient.FullName(), doctor.LastName,
			timefmt.ShortDateTime(oldBookingTime), timefmt.ShortDateTime(updated.BookingTime)),
	)

	monitoring.RecordBookingOutcome("reschedule", "committed")
	s.logger.WithPatientID(patientID).Infof("Successfully rescheduled booking %s", updated.ID)
	return updated, nil
}

// GetBooking retrieves a single booking by ID
func (s *Service) GetBooking(ctx context.Context, bookingID string) (*types.Booking, error) {
	return s.repo.GetBookingByID(ctx, bookingID)
}

// validateRequest runs the format, clock-window and booking-type rules and
// composes the canonical booking time. All clock and date format violations
// are aggregated into a single reported failure.
func (s *Service) validateRequest(req *types.BookingRequest) (time.Time, error) {
	codes := validation.Collect(
		s.validator.VerifyClockTime(req.Hour, req.Minute),
		s.validator.VerifyDate(req.Date),
	)
	if len(codes) > 0 {
		return time.Time{}, types.NewValidationError("invalid time values", codes)
	}

	if code := s.validator.VerifyBookingType(req.Type); code != validation.NoError {
		return time.Time{}, types.NewValidationError("wrong booking type", []types.ErrorCode{code})
	}

	bookingTime, err := s.validator.ComposeBookingTime(req.Date, req.Hour, req.Minute)
	if err != nil {
		return time.Time{}, types.NewValidationError("invalid time values", []types.ErrorCode{types.CodeWrongDate})
	}

	if code := s.validator.VerifyNotPast(bookingTime, s.now()); code != validation.NoError {
		return time.Time{}, types.NewValidationError("can't book on a past date", []types.ErrorCode{code})
	}

	return bookingTime, nil
}

// checkSlotIsFree rejects a booking time the patient has already booked,
// compared exactly to the second. Other patients may book the same slot.
func (s *Service) checkSlotIsFree(ctx context.Context, patient *types.Patient, bookingTime time.Time) error {
	existing, err := s.repo.GetBookings(ctx, patient)
	if err != nil {
		return err
	}

	for _, b := range existing {
		if b.BookingTime.Equal(bookingTime) {
			return types.NewConflictError(types.CodeExistingBooking,
				"a booking already exists at that time")
		}
	}
	return nil
}

// recordSideEffects persists the notification and audit log entry for a
// committed booking. The booking commit is authoritative: failures here are
// logged and do not roll back or fail the operation.
func (s *Service) recordSideEffects(ctx context.Context, patient *types.Patient, header, message, logMessage string) {
	if _, err := s.repo.CreateNotification(ctx, patient, header, message); err != nil {
		s.logger.WithPatientID(patient.ID).WithError(err).Error("Failed to create booking notification")
	}

	if _, err := s.repo.CreateLog(ctx, patient, logMessage); err != nil {
		s.logger.WithPatientID(patient.ID).WithError(err).Error("Failed to create booking audit log entry")
	}

	s.logger.Audit(patient.ID, "booking", header, true, map[string]interface{}{
		"message": message,
	})
}
