package types

import "time"

// Notification is a user-visible message recording the outcome of a business
// action. Created as a side effect of scheduling, rescheduling, registration
// and doctor changes; only the Unread flag is ever mutated afterwards.
type Notification struct {
	ID        string    `json:"id" db:"id"`
	PatientID string    `json:"patient_id" db:"patient_id"`
	Header    string    `json:"header" db:"header"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Unread    bool      `json:"unread" db:"unread"`
}

// LogEntry is an append-only audit record of patient activity.
type LogEntry struct {
	ID        string    `json:"id" db:"id"`
	PatientID string    `json:"patient_id" db:"patient_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
