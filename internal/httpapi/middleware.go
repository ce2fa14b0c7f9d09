package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/monitoring"
	"github.com/clinicdesk/booking/pkg/types"
)

// TokenValidator validates a bearer token and returns the patient ID it
// was issued for.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// statusRecorder captures the response status code for logging
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every request and records HTTP metrics
func LoggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)
			log.HTTPRequest(r.Method, r.URL.Path, recorder.statusCode, duration.Milliseconds())
			monitoring.RecordHTTPRequest(r.Method, r.URL.Path, recorder.statusCode, duration)
		})
	}
}

// AuthMiddleware validates the Authorization bearer token and stores the
// authenticated patient's ID on the request context.
func AuthMiddleware(tokens TokenValidator, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				WriteError(w, types.NewAuthError("authorization header required"))
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				WriteError(w, types.NewAuthError("authorization header must be a bearer token"))
				return
			}

			patientID, err := tokens.Validate(token)
			if err != nil {
				log.WithError(err).Warn("rejected request with invalid token")
				WriteError(w, types.NewAuthError("invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPatientID(r.Context(), patientID)))
		})
	}
}

// RecoveryMiddleware converts handler panics into 500 responses
func RecoveryMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithField("panic", rec).Error("handler panic recovered")
					WriteError(w, types.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
