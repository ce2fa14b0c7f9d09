package interfaces

import (
	"context"
	"time"

	"github.com/clinicdesk/booking/pkg/types"
)

// BookingService defines the interface for scheduling and querying bookings
type BookingService interface {
	// Scheduling
	CreateBooking(ctx context.Context, req *types.BookingRequest, patientID string) (*types.Booking, error)
	RescheduleBooking(ctx context.Context, req *types.BookingRequest, patientID string, booking *types.Booking) (*types.Booking, error)

	// Queries
	GetBooking(ctx context.Context, bookingID string) (*types.Booking, error)
	GetBookings(ctx context.Context, patientID string, wantPast bool) ([]*types.Booking, error)
	FilterBookings(ctx context.Context, month, year, patientID string, wantPast bool) ([]*types.Booking, error)
}

// BookingRepository defines the persistence capability the booking engine
// depends on. Implementations assign record identity at creation time.
type BookingRepository interface {
	CreateBooking(ctx context.Context, patient *types.Patient, doctor *types.Doctor, bookingTime time.Time, bookingType string) (*types.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*types.Booking, error)
	// GetBookings returns all of a patient's bookings in insertion order.
	GetBookings(ctx context.Context, patient *types.Patient) ([]*types.Booking, error)
	UpdateBooking(ctx context.Context, booking *types.Booking) (*types.Booking, error)
	DeleteBooking(ctx context.Context, id string) error

	GetPatientByID(ctx context.Context, id string) (*types.Patient, error)
	GetDoctorForPatient(ctx context.Context, patient *types.Patient) (*types.Doctor, error)

	CreateNotification(ctx context.Context, patient *types.Patient, header, message string) (*types.Notification, error)
	CreateLog(ctx context.Context, patient *types.Patient, message string) (*types.LogEntry, error)
}
