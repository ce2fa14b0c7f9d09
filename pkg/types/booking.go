package types

import "time"

// Booking represents a scheduled appointment between a patient and their doctor
type Booking struct {
	ID           string    `json:"id" db:"id"`
	DoctorID     string    `json:"doctor_id" db:"doctor_id"`
	PatientID    string    `json:"patient_id" db:"patient_id"`
	BookingTime  time.Time `json:"booking_time" db:"booking_time"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	Type         string    `json:"type" db:"type"`
	Details      string    `json:"details" db:"details"`
	Prescription string    `json:"prescription" db:"prescription"`
}

// BookingTypes is the closed set of booking types a patient can select.
var BookingTypes = []string{
	"Other",
	"Routine Checkup",
	"Emergency Checkup",
	"Telephone Session",
	"Surgery",
	"Physical Checkup",
	"Mental Health Checkup",
	"Blood Testing",
	"General Consultation",
}

// Wildcard selectors accepted by the month/year booking filter.
const (
	AllMonths = "Month (All)"
	AllYears  = "Year (All)"
)

// BookingRequest carries the raw date/time fragments a patient submits when
// creating or rescheduling a booking. Hour and minute stay strings until the
// clock-time rules have run.
type BookingRequest struct {
	Date   string `json:"date"`
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
	Type   string `json:"type"`
}
