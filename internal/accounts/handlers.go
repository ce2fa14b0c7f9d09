package accounts

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/booking/internal/httpapi"
	"github.com/clinicdesk/booking/pkg/types"
)

// loginRequest carries the credentials submitted at login
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse returns the authenticated patient and their bearer token
type loginResponse struct {
	Patient *types.Patient `json:"patient"`
	Token   string         `json:"token"`
}

// changeDoctorRequest names the doctor the patient is switching to
type changeDoctorRequest struct {
	DoctorID string `json:"doctor_id"`
}

// RegisterPublicRoutes configures the routes that need no authentication
func (s *Service) RegisterPublicRoutes(api *mux.Router) {
	api.HandleFunc("/register", s.registerHandler).Methods("POST")
	api.HandleFunc("/login", s.loginHandler).Methods("POST")
	api.HandleFunc("/doctors", s.listDoctorsHandler).Methods("GET")

	s.logger.Info("Account public routes configured")
}

// RegisterRoutes configures the routes that require a logged-in patient
func (s *Service) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/logout", s.logoutHandler).Methods("POST")
	api.HandleFunc("/profile", s.getProfileHandler).Methods("GET")
	api.HandleFunc("/profile", s.updateProfileHandler).Methods("PUT")
	api.HandleFunc("/profile/doctor", s.changeDoctorHandler).Methods("PUT")

	s.logger.Info("Account routes configured")
}

// registerHandler handles new patient registration
func (s *Service) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req types.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, types.NewValidationError("invalid request body", nil))
		return
	}

	patient, err := s.Register(r.Context(), &req)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, patient)
}

// loginHandler handles patient login and token issuance
func (s *Service) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, types.NewValidationError("invalid request body", nil))
		return
	}

	patient, token, err := s.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, &loginResponse{Patient: patient, Token: token})
}

// logoutHandler records the patient's logout
func (s *Service) logoutHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	if err := s.Logout(r.Context(), patientID); err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// getProfileHandler returns the logged-in patient's profile
func (s *Service) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	patient, err := s.GetPatient(r.Context(), patientID)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, patient)
}

// updateProfileHandler applies the editable fields of the logged-in
// patient's profile
func (s *Service) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	var req types.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, types.NewValidationError("invalid request body", nil))
		return
	}

	patient, err := s.UpdateProfile(r.Context(), patientID, &req)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, patient)
}

// changeDoctorHandler reassigns the logged-in patient to a new doctor
func (s *Service) changeDoctorHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	var req changeDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, types.NewValidationError("invalid request body", nil))
		return
	}

	if err := s.ChangeDoctor(r.Context(), patientID, req.DoctorID); err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "doctor changed"})
}

// listDoctorsHandler returns the doctors available for registration
func (s *Service) listDoctorsHandler(w http.ResponseWriter, r *http.Request) {
	doctors, err := s.ListDoctors(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, doctors)
}
