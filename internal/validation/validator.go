// Package validation implements the field-format and temporal rules for
// patient registration and booking requests. Every rule is pure: it takes
// its inputs and returns either an error code or the empty code, with no
// side effects. Callers collect the non-empty results of all relevant rules
// so that every violated rule is reported together.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/clinicdesk/booking/pkg/types"
)

// NoError is the zero error code returned by a rule that passed.
const NoError types.ErrorCode = ""

// Booking hours run 09:00 to 17:55. The presentation layer offers minutes
// in 5-minute steps but the rule only bounds the value.
const (
	MinBookingHour   = 9
	MaxBookingHour   = 17
	MaxBookingMinute = 55
)

// dateLayout accepts calendar-valid YYYY-MM-DD dates with or without
// zero-padded month and day.
const dateLayout = "2006-1-2"

// bookingTimeLayout parses the canonical composed timestamp.
const bookingTimeLayout = "2006-1-2 15:4:5"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Validator holds the stateless field and temporal rules.
type Validator struct{}

// New creates a new validator
func New() *Validator {
	return &Validator{}
}

// IsAlpha reports whether s consists purely of letters. The empty string
// is considered alphabetic; name rules add their own blank checks.
func (v *Validator) IsAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsNum reports whether s consists purely of ASCII digits. The empty
// string is considered numeric; length rules catch it where it matters.
func (v *Validator) IsNum(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// VerifyFirstName checks that a first name is non-blank and purely alphabetic.
func (v *Validator) VerifyFirstName(name string) types.ErrorCode {
	if strings.TrimSpace(name) == "" || !v.IsAlpha(name) {
		return types.CodeWrongFirstName
	}
	return NoError
}

// VerifyMiddleName checks that a middle name is purely alphabetic. Blank is
// allowed.
func (v *Validator) VerifyMiddleName(name string) types.ErrorCode {
	if !v.IsAlpha(name) {
		return types.CodeWrongMiddleName
	}
	return NoError
}

// VerifyLastName checks that a last name is non-blank and purely alphabetic.
func (v *Validator) VerifyLastName(name string) types.ErrorCode {
	if strings.TrimSpace(name) == "" || !v.IsAlpha(name) {
		return types.CodeWrongLastName
	}
	return NoError
}

// VerifyDate checks that a date string is a calendar-valid YYYY-MM-DD date.
func (v *Validator) VerifyDate(date string) types.ErrorCode {
	if _, err := time.ParseInLocation(dateLayout, date, time.Local); err != nil {
		return types.CodeWrongDate
	}
	return NoError
}

// ParseDate parses a calendar date using the same layout VerifyDate accepts.
func (v *Validator) ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, date, time.Local)
}

// VerifyGender checks that gender is exactly Male, Female or Other.
func (v *Validator) VerifyGender(gender string) types.ErrorCode {
	if gender != "Male" && gender != "Female" && gender != "Other" {
		return types.CodeWrongGender
	}
	return NoError
}

// VerifyPhoneNo checks that a phone number is all digits and 5-15
// characters long.
func (v *Validator) VerifyPhoneNo(phoneNo string) types.ErrorCode {
	if !v.IsNum(phoneNo) || len(phoneNo) < 5 || len(phoneNo) > 15 {
		return types.CodeWrongPhoneNo
	}
	return NoError
}

// VerifyEmail checks that an email address matches a standard address grammar.
func (v *Validator) VerifyEmail(email string) types.ErrorCode {
	if !emailPattern.MatchString(email) {
		return types.CodeWrongEmail
	}
	return NoError
}

// VerifyPassword checks that a password is at least 8 characters and
// contains at least one uppercase letter, one lowercase letter, one digit
// and one character outside letters, digits and space.
func (v *Validator) VerifyPassword(password string) types.ErrorCode {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r != ' ':
			hasSpecial = true
		}
	}

	if len(password) < 8 || !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return types.CodeWrongPassword
	}
	return NoError
}

// VerifyMatchingEmails checks that an email and its confirmation are equal.
func (v *Validator) VerifyMatchingEmails(email, confirmEmail string) types.ErrorCode {
	if email != confirmEmail {
		return types.CodeWrongConfirmedEmail
	}
	return NoError
}

// VerifyMatchingPasswords checks that a password and its confirmation are equal.
func (v *Validator) VerifyMatchingPasswords(password, confirmPassword string) types.ErrorCode {
	if password != confirmPassword {
		return types.CodeWrongConfirmedPass
	}
	return NoError
}

// VerifyClockTime checks that hour and minute are numeric strings with the
// hour inside the daily booking window and the minute inside the hour.
func (v *Validator) VerifyClockTime(hour, minute string) types.ErrorCode {
	if !v.IsNum(hour) || !v.IsNum(minute) {
		return types.CodeWrongTime
	}

	h, err := strconv.Atoi(hour)
	if err != nil {
		return types.CodeWrongTime
	}
	m, err := strconv.Atoi(minute)
	if err != nil {
		return types.CodeWrongTime
	}

	if h < MinBookingHour || h > MaxBookingHour || m < 0 || m > MaxBookingMinute {
		return types.CodeWrongTime
	}
	return NoError
}

// ComposeBookingTime joins separate date, hour and minute selections into
// the canonical "YYYY-MM-DD HH:MM:00" point in time, parsed as naive local
// time.
func (v *Validator) ComposeBookingTime(date, hour, minute string) (time.Time, error) {
	composed := date + " " + hour + ":" + minute + ":00"
	t, err := time.ParseInLocation(bookingTimeLayout, composed, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// VerifyNotPast checks that a booking time is not strictly before now.
// A booking time equal to now passes.
func (v *Validator) VerifyNotPast(bookingTime, now time.Time) types.ErrorCode {
	if bookingTime.Before(now) {
		return types.CodeImpossibleBooking
	}
	return NoError
}

// VerifyBookingType checks that the type is a member of the fixed set of
// booking types.
func (v *Validator) VerifyBookingType(bookingType string) types.ErrorCode {
	for _, t := range types.BookingTypes {
		if bookingType == t {
			return NoError
		}
	}
	return types.CodeWrongBookingType
}

// Collect filters the results of a batch of rules down to the violated
// ones, preserving order.
func Collect(codes ...types.ErrorCode) []types.ErrorCode {
	violated := make([]types.ErrorCode, 0, len(codes))
	for _, c := range codes {
		if c != NoError {
			violated = append(violated, c)
		}
	}
	return violated
}
