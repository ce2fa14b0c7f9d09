package booking

import (
	"context"
	"time"

	"github.com/clinicdesk/booking/pkg/types"
)

// monthEpoch anchors month-only filters. A bare month selection is composed
// against this fixed year purely to extract a month index, so month-only and
// year-only filters share one calendar-decomposition path.
const monthEpoch = "1900"

// GetBookings fetches all of a patient's bookings and keeps the past or the
// future partition. A booking whose time equals "now" exactly belongs to
// neither partition.
func (s *Service) GetBookings(ctx context.Context, patientID string, wantPast bool) ([]*types.Booking, error) {
	patient, err := s.repo.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.GetBookings(ctx, patient)
	if err != nil {
		return nil, err
	}

	now := s.now()
	partition := make([]*types.Booking, 0, len(all))
	for _, b := range all {
		if wantPast {
			if b.BookingTime.Before(now) {
				partition = append(partition, b)
			}
		} else {
			if b.BookingTime.After(now) {
				partition = append(partition, b)
			}
		}
	}

	return partition, nil
}

// FilterBookings narrows a past/future partition down to a month and/or
// year selection. Month and year are numeric strings or the "Month (All)" /
// "Year (All)" wildcards; with both wildcarded the partition is returned
// unchanged, in the same order.
func (s *Service) FilterBookings(ctx context.Context, month, year, patientID string, wantPast bool) ([]*types.Booking, error) {
	if !s.validator.IsNum(year) && !s.validator.IsNum(month) &&
		month != types.AllMonths && year != types.AllYears {
		return nil, types.NewValidationError("month or year aren't numbers", []types.ErrorCode{types.CodeWrongDate})
	}

	all, err := s.GetBookings(ctx, patientID, wantPast)
	if err != nil {
		return nil, err
	}

	filterMonth := time.Month(-1)
	filterYear := -1

	if month != types.AllMonths {
		composed, err := s.validator.ComposeBookingTime(monthEpoch+"-"+month+"-01", "00", "00")
		if err != nil {
			return nil, types.NewValidationError("month is not a calendar month", []types.ErrorCode{types.CodeWrongDate})
		}
		filterMonth = composed.Month()
	}

	if year != types.AllYears {
		composed, err := s.validator.ComposeBookingTime(year+"-01-01", "00", "00")
		if err != nil {
			return nil, types.NewValidationError("year is not a calendar year", []types.ErrorCode{types.CodeWrongDate})
		}
		filterYear = composed.Year()
	}

	filtered := make([]*types.Booking, 0, len(all))
	for _, b := range all {
		bMonth := b.BookingTime.Month()
		bYear := b.BookingTime.Year()

		if (bMonth == filterMonth && bYear == filterYear) ||
			(bMonth == filterMonth && year == types.AllYears) ||
			(month == types.AllMonths && bYear == filterYear) ||
			(month == types.AllMonths && year == types.AllYears) {
			filtered = append(filtered, b)
		}
	}

	return filtered, nil
}
