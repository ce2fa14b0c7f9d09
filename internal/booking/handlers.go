package booking

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/booking/internal/httpapi"
	"github.com/clinicdesk/booking/pkg/types"
)

// RegisterRoutes configures the booking HTTP routes on the given router.
// All routes require an authenticated patient on the request context.
func (s *Service) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/bookings", s.createBookingHandler).Methods("POST")
	api.HandleFunc("/bookings", s.getBookingsHandler).Methods("GET")
	api.HandleFunc("/bookings/{id}", s.getBookingHandler).Methods("GET")
	api.HandleFunc("/bookings/{id}", s.rescheduleBookingHandler).Methods("PUT")

	s.logger.Info("Booking routes configured")
}

// createBookingHandler handles booking creation
func (s *Service) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	var req types.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, types.NewValidationError("invalid request body", nil))
		return
	}

	booking, err := s.CreateBooking(r.Context(), &req, patientID)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, booking)
}

// rescheduleBookingHandler handles moving an existing booking to a new slot
func (s *Service) rescheduleBookingHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	bookingID := mux.Vars(r)["id"]

	var req types.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, types.NewValidationError("invalid request body", nil))
		return
	}

	booking, err := s.GetBooking(r.Context(), bookingID)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	if booking.PatientID != patientID {
		httpapi.WriteError(w, types.NewNotFoundError(types.CodeBookingNotFound, "booking not found"))
		return
	}

	updated, err := s.RescheduleBooking(r.Context(), &req, patientID, booking)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, updated)
}

// getBookingHandler handles retrieval of a single booking
func (s *Service) getBookingHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	booking, err := s.GetBooking(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	if booking.PatientID != patientID {
		httpapi.WriteError(w, types.NewNotFoundError(types.CodeBookingNotFound, "booking not found"))
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, booking)
}

// getBookingsHandler handles listing the patient's bookings, split into
// upcoming and past via the "past" query parameter, optionally narrowed
// by "month" and "year" filters.
func (s *Service) getBookingsHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	query := r.URL.Query()
	wantPast := query.Get("past") == "true"
	month := query.Get("month")
	year := query.Get("year")

	var bookings []*types.Booking
	var err error
	if month != "" || year != "" {
		if month == "" {
			month = types.AllMonths
		}
		if year == "" {
			year = types.AllYears
		}
		bookings, err = s.FilterBookings(r.Context(), month, year, patientID, wantPast)
	} else {
		bookings, err = s.GetBookings(r.Context(), patientID, wantPast)
	}
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, bookings)
}
