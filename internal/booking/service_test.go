package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinicdesk/booking/internal/validation"
	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/types"
)

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateBooking(ctx context.Context, patient *types.Patient, doctor *types.Doctor, bookingTime time.Time, bookingType string) (*types.Booking, error) {
	args := m.Called(ctx, patient, doctor, bookingTime, bookingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookingByID(ctx context.Context, id string) (*types.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookings(ctx context.Context, patient *types.Patient) ([]*types.Booking, error) {
	args := m.Called(ctx, patient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateBooking(ctx context.Context, booking *types.Booking) (*types.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Booking), args.Error(1)
}

func (m *MockBookingRepository) DeleteBooking(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) GetPatientByID(ctx context.Context, id string) (*types.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Patient), args.Error(1)
}

func (m *MockBookingRepository) GetDoctorForPatient(ctx context.Context, patient *types.Patient) (*types.Doctor, error) {
	args := m.Called(ctx, patient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Doctor), args.Error(1)
}

func (m *MockBookingRepository) CreateNotification(ctx context.Context, patient *types.Patient, header, message string) (*types.Notification, error) {
	args := m.Called(ctx, patient, header, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Notification), args.Error(1)
}

func (m *MockBookingRepository) CreateLog(ctx context.Context, patient *types.Patient, message string) (*types.LogEntry, error) {
	args := m.Called(ctx, patient, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.LogEntry), args.Error(1)
}

// testNow is the fixed clock all scheduler tests run against
var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)

func setupTestService() (*Service, *MockBookingRepository) {
	mockRepo := &MockBookingRepository{}
	service := &Service{
		logger:    logger.New("debug"),
		repo:      mockRepo,
		validator: validation.New(),
		now:       func() time.Time { return testNow },
	}
	return service, mockRepo
}

func testPatient() *types.Patient {
	return &types.Patient{
		ID:        "patient-123",
		DoctorID:  "doctor-456",
		FirstName: "John",
		LastName:  "Smith",
	}
}

func testDoctor() *types.Doctor {
	return &types.Doctor{
		ID:        "doctor-456",
		FirstName: "Gregory",
		LastName:  "House",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	service, mockRepo := setupTestService()
	patient := testPatient()
	doctor := testDoctor()

	req := &types.BookingRequest{Date: "2024-6-1", Hour: "10", Minute: "0", Type: "Surgery"}
	wantTime := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

	mockRepo.On("GetPatientByID", mock.Anything, "patient-123").Return(patient, nil)
	mockRepo.On("GetDoctorForPatient", mock.Anything, patient).Return(doctor, nil)
	mockRepo.On("GetBookings", mock.Anything, patient).Return([]*types.Booking{}, nil)
	mockRepo.On("CreateBooking", mock.Anything, patient, doctor, wantTime, "Surgery").Return(&types.Booking{
		ID:          "booking-789",
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		BookingTime: wantTime,
		Type:        "Surgery",
	}, nil)
	mockRepo.On("CreateNotification", mock.Anything, patient, "Created New Booking",
		"Created a booking on Saturday, 01 June, 2024 with Dr Gregory House").Return(&types.Notification{}, nil)
	mockRepo.On("CreateLog", mock.Anything, patient,
		"Patient John Smith has scheduled a booking with Dr. House on Sat, 01/06/2024, 10:00").Return(&types.LogEntry{}, nil)

	booking, err := service.CreateBooking(context.Background(), req, "patient-123")

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, "booking-789", booking.ID)
	assert.True(t, booking.BookingTime.Equal(wantTime))
	mockRepo.AssertExpectations(t)
}

func TestCreateBooking_InvalidClockTime(t *testing.T) {
	service, mockRepo := setupTestService()

	req := &types.BookingRequest{Date: "2024-6-1", Hour: "18", Minute: "0", Type: "Surgery"}

	_, err := service.CreateBooking(context.Background(), req, "patient-123")

	assert.Error(t, err)
	e, ok := types.AsError(err)
	assert.True(t, ok)
	assert.True(t, e.HasCode(types.CodeWrongTime))
	mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_AggregatesTimeAndDateViolations(t *testing.T) {
	service, _ := setupTestService()

	req := &types.BookingRequest{Date: "not-a-date", Hour: "8", Minute: "60", Type: "Surgery"}

	_, err := service.CreateBooking(context.Background(), req, "patient-123")

	assert.Error(t, err)
	e, ok := types.AsError(err)
	assert.True(t, ok)
	assert.True(t, e.HasCode(types.CodeWrongTime))
	assert.True(t, e.HasCode(types.CodeWrongDate))
}

func TestCreateBooking_WrongBookingType(t *testing.T) {
	service, _ := setupTestService()

	req := &types.BookingRequest{Date: "2024-6-1", Hour: "10", Minute: "0", Type: "Exorcism"}

	_, err := service.CreateBooking(context.Background(), req, "patient-123")

	assert.Error(t, err)
	e, ok := types.AsError(err)
	assert.True(t, ok)
	assert.True(t, e.HasCode(types.CodeWrongBookingType))
}

func TestCreateBooking_PastDate(t *testing.T) {
	service, mockRepo := setupTestService()

	req := &types.BookingRequest{Date: "2020-1-1", Hour: "10", Minute: "0", Type: "Surgery"}

	_, err := service.CreateBooking(context.Background(), req, "patient-123")

	assert.Error(t, err)
	e, ok := types.AsError(err)
	assert.True(t, ok)
	assert.True(t, e.HasCode(types.CodeImpossibleBooking))
	mockRepo.AssertNotCalled(t, "GetPatientByID", mock.Anything, mock.Anything)
}

func TestCreateBooking_SlotAlreadyTaken(t *testing.T) {
	service, mockRepo := setupTestService()
	patient := testPatient()
	doctor := testDoctor()

	req := &types.BookingRequest{Date: "2024-6-1", Hour: "10", Minute: "0", Type: "Surgery"}
	takenTime := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

	mockRepo.On("GetPatientByID", mock.Anything, "patient-123").Return(patient, nil)
	mockRepo.On("GetDoctorForPatient", mock.Anything, patient).Return(doctor, nil)
	mockRepo.On("GetBookings", mock.Anything, patient).Return([]*types.Booking{
		{ID: "existing-1", PatientID: patient.ID, BookingTime: takenTime},
	}, nil)

	_, err := service.CreateBooking(context.Background(), req, "patient-123")

	assert.Error(t, err)
	e, ok := types.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, types.CodeExistingBooking, e.Code)
	assert.Equal(t, types.ErrorTypeConflict, e.Type)
	mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_SameSlotDifferentPatientSucceeds(t *testing.T) {
	service, mockRepo := setupTestService()
	doctor := testDoctor()
	other := &types.Patient{
		ID:        "patient-999",
		DoctorID:  doctor.ID,
		FirstName: "Jane",
		LastName:  "Doe",
	}

	// patient-123 already holds this slot; only the caller's own
	// bookings are checked for conflicts.
	req := &types.BookingRequest{Date: "2024-6-1", Hour: "10", Minute: "0", Type: "Surgery"}
	wantTime := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

	mockRepo.On("GetPatientByID", mock.Anything, "patient-999").Return(other, nil)
	mockRepo.On("GetDoctorForPatient", mock.Anything, other).Return(doctor, nil)
	mockRepo.On("GetBookings", mock.Anything, other).Return([]*types.Booking{}, nil)
	mockRepo.On("CreateBooking", mock.Anything, other, doctor, wantTime, "Surgery").Return(&types.Booking{
		ID: "booking-900", PatientID: other.ID, BookingTime: wantTime, Type: "Surgery",
	}, nil)
	mockRepo.On("CreateNotification", mock.Anything, other, mock.Anything, mock.Anything).Return(&types.Notification{}, nil)
	mockRepo.On("CreateLog", mock.Anything, other, mock.Anything).Return(&types.LogEntry{}, nil)

	booking, err := service.CreateBooking(context.Background(), req, "patient-999")

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, "patient-999", booking.PatientID)
	assert.True(t, booking.BookingTime.Equal(wantTime))
	mockRepo.AssertExpectations(t)
}

func TestCreateBooking_OtherBookingsDoNotConflict(t *testing.T) {
	service, mockRepo := setupTestService()
	patient := testPatient()
	doctor := testDoctor()

	req := &types.BookingRequest{Date: "2024-6-1", Hour: "10", Minute: "0", Type: "Surgery"}
	wantTime := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

	mockRepo.On("GetPatientByID", mock.Anything, "patient-123").Return(patient, nil)
	mockRepo.On("GetDoctorForPatient", mock.Anything, patient).Return(doctor, nil)
	mockRepo.On("GetBookings", mock.Anything, patient).Return([]*types.Booking{
		{ID: "existing-1", PatientID: patient.ID, BookingTime: wantTime.Add(time.Hour)},
		{ID: "existing-2", PatientID: patient.ID, BookingTime: wantTime.AddDate(0, 0, 1)},
	}, nil)
	mockRepo.On("CreateBooking", mock.Anything, patient, doctor, wantTime, "Surgery").Return(&types.Booking{
		ID: "booking-789", PatientID: patient.ID, BookingTime: wantTime, Type: "Surgery",
	}, nil)
	mockRepo.On("CreateNotification", mock.Anything, patient, mock.Anything, mock.Anything).Return(&types.Notification{}, nil)
	mockRepo.On("CreateLog", mock.Anything, patient, mock.Anything).Return(&types.LogEntry{}, nil)

	booking, err := service.CreateBooking(context.Background(), req, "patient-123")

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	mockRepo.AssertExpectations(t)
}

func TestCreateBooking_NotificationFailureDoesNotFailBooking(t *testing.T) {
	service, mockRepo := setupTestService()
	patient := testPatient()
	doctor := testDoctor()

	req := &types.BookingRequest{Date: "2024-6-1", Hour: "10", Minute: "0", Type: "Surgery"}
	wantTime := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

	mockRepo.On("GetPatientByID", mock.Anything, "patient-123").Return(patient, nil)
	mockRepo.On("GetDoctorForPatient", mock.Anything, patient).Return(doctor, nil)
	mockRepo.On("GetBookings", mock.Anything, patient).Return([]*types.Booking{}, nil)
	mockRepo.On("CreateBooking", mock.Anything, patient, doctor, wantTime, "Surgery").Return(&types.Booking{
		ID: "booking-789", PatientID: patient.ID, BookingTime: wantTime, Type: "Surgery",
	}, nil)
	mockRepo.On("CreateNotification", mock.Anything, patient, mock.Anything, mock.Anything).
		Return(nil, types.NewStorageError("insert failed", nil))
	mockRepo.On("CreateLog", mock.Anything, patient, mock.Anything).
		Return(nil, types.NewStorageError("insert failed", nil))

	booking, err := service.CreateBooking(context.Background(), req, "patient-123")

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	mockRepo.AssertExpectations(t)
}

func TestRescheduleBooking_Success(t *testing.T) {
	service, mockRepo := setupTestService()
	patient := testPatient()
	doctor := testDoctor()

	oldTime := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
	newTime := time.Date(2024, 6, 2, 11, 0, 0, 0, time.Local)
	existing := &types.Booking{
		ID:          "booking-789",
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		BookingTime: oldTime,
		Type:        "Routine Checkup",
	}

	req := &types.BookingRequest{Date: "2024-6-2", Hour: "11", Minute: "0", Type: "Surgery"}

	mockRepo.On("GetPatientByID", mock.Anything, "patient-123").Return(patient, nil)
	mockRepo.On("GetDoctorForPatient", mock.Anything, patient).Return(doctor, nil)
	mockRepo.On("GetBookings", mock.Anything, patient).Return([]*types.Booking{}, nil)
	mockRepo.On("UpdateBooking", mock.Anything, existing).Return(existing, nil)
	mockRepo.On("CreateNotification", mock.Anything, patient, "Rescheduled Booking",
		"Changed booking with Dr Gregory House, from Saturday, 01 June, 2024 to Sunday, 02 June, 2024").
		Return(&types.Notification{}, nil)
	mockRepo.On("CreateLog", mock.Anything, patient,
		"Patient John Smith has rescheduled a booking with Dr. House from Sat, 01/06/2024, 10:00 to Sun, 02/06/2024, 11:00").
		Return(&types.LogEntry{}, nil)

	updated, err := service.RescheduleBooking(context.Background(), req, "patient-123", existing)

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, "booking-789", updated.ID)
	assert.True(t, updated.BookingTime.Equal(newTime))
	assert.Equal(t, "Surgery", updated.Type)
	mockRepo.AssertExpectations(t)
}

func TestRescheduleBooking_InvalidRequestLeavesBookingUntouched(t *testing.T) {
	service, mockRepo := setupTestService()

	oldTime := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
	existing := &types.Booking{
		ID:          "booking-789",
		PatientID:   "patient-123",
		BookingTime: oldTime,
		Type:        "Routine Checkup",
	}

	req := &types.BookingRequest{Date: "2024-6-2", Hour: "25", Minute: "0", Type: "Surgery"}

	_, err := service.RescheduleBooking(context.Background(), req, "patient-123", existing)

	assert.Error(t, err)
	assert.True(t, existing.BookingTime.Equal(oldTime))
	assert.Equal(t, "Routine Checkup", existing.Type)
	mockRepo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything)
}
