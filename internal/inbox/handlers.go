package inbox

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/booking/internal/httpapi"
	"github.com/clinicdesk/booking/pkg/types"
)

// RegisterRoutes configures the inbox HTTP routes on the given router.
// All routes require an authenticated patient on the request context.
func (s *Service) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/notifications", s.getNotificationsHandler).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", s.readNotificationHandler).Methods("POST")
	api.HandleFunc("/logs", s.getLogsHandler).Methods("GET")

	s.logger.Info("Inbox routes configured")
}

// getNotificationsHandler returns the logged-in patient's notifications
func (s *Service) getNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	notifications, err := s.GetNotifications(r.Context(), patientID)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, notifications)
}

// readNotificationHandler marks one of the patient's notifications as seen
func (s *Service) readNotificationHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	notification, err := s.repo.GetNotificationByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	if notification.PatientID != patientID {
		httpapi.WriteError(w, types.NewNotFoundError(types.CodeNotificationNotFound, "notification not found"))
		return
	}

	updated, err := s.ReadNotification(r.Context(), notification.ID)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, updated)
}

// getLogsHandler returns the logged-in patient's activity log
func (s *Service) getLogsHandler(w http.ResponseWriter, r *http.Request) {
	patientID, ok := httpapi.PatientIDFromContext(r.Context())
	if !ok {
		httpapi.WriteError(w, types.NewAuthError("not logged in"))
		return
	}

	logs, err := s.GetLogs(r.Context(), patientID)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, logs)
}
