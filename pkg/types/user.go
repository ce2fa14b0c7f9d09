package types

import (
	"fmt"
	"time"
)

// Patient represents a registered patient account
type Patient struct {
	ID         string    `json:"id" db:"id"`
	DoctorID   string    `json:"doctor_id" db:"doctor_id"`
	Email      string    `json:"email" db:"email"`
	PassHash   string    `json:"-" db:"pass_hash"`
	FirstName  string    `json:"first_name" db:"first_name"`
	MiddleName string    `json:"middle_name" db:"middle_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender     string    `json:"gender" db:"gender"`
	PhoneNo    string    `json:"phone_no" db:"phone_no"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// FullName returns the patient's first and last name
func (p *Patient) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

// Doctor represents a doctor patients can register with
type Doctor struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	FirstName   string    `json:"first_name" db:"first_name"`
	MiddleName  string    `json:"middle_name" db:"middle_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender      string    `json:"gender" db:"gender"`
	PhoneNo     string    `json:"phone_no" db:"phone_no"`
}

// FullName returns the doctor's first and last name
func (d *Doctor) FullName() string {
	return fmt.Sprintf("%s %s", d.FirstName, d.LastName)
}

// RegistrationRequest carries the raw form fields submitted when a patient
// registers. Everything stays a string until the field rules have run.
type RegistrationRequest struct {
	FirstName       string `json:"first_name"`
	MiddleName      string `json:"middle_name"`
	LastName        string `json:"last_name"`
	DateOfBirth     string `json:"date_of_birth"`
	Gender          string `json:"gender"`
	PhoneNo         string `json:"phone_no"`
	Email           string `json:"email"`
	ConfirmEmail    string `json:"confirm_email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	DoctorID        string `json:"doctor_id"`
}

// ProfileUpdateRequest carries the editable profile fields. Email and
// password changes are deliberately excluded.
type ProfileUpdateRequest struct {
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	PhoneNo     string `json:"phone_no"`
}
