// Package server assembles the booking service: database, repositories,
// domain services and the HTTP surface they expose.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/booking/internal/accounts"
	"github.com/clinicdesk/booking/internal/booking"
	"github.com/clinicdesk/booking/internal/httpapi"
	"github.com/clinicdesk/booking/internal/inbox"
	"github.com/clinicdesk/booking/pkg/config"
	"github.com/clinicdesk/booking/pkg/database"
	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/monitoring"
)

// Server owns the wired-up service graph and the HTTP listener
type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.DB
	health *monitoring.HealthManager
	server *http.Server
}

// New wires the full service graph from configuration
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if err := db.CreateSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	if cfg.Monitoring.Enabled {
		monitoring.Register()
	}

	health := monitoring.NewHealthManager("booking-service", "1.0.0")
	health.RegisterChecker("database", monitoring.NewDatabaseHealthChecker(db.DB))

	tokens := accounts.NewTokenManager(&cfg.JWT)

	accountsService := accounts.NewService(accounts.NewRepository(db, log), tokens, log)
	bookingService := booking.NewService(booking.NewRepository(db, log), log)
	inboxService := inbox.NewService(inbox.NewRepository(db, log), log)

	router := mux.NewRouter()
	router.Use(httpapi.RecoveryMiddleware(log))
	router.Use(httpapi.LoggingMiddleware(log))

	router.HandleFunc("/health", health.HTTPHandler()).Methods("GET")
	if cfg.Monitoring.Enabled {
		router.Handle(cfg.Monitoring.MetricsPath, monitoring.Handler()).Methods("GET")
	}

	throttle := httpapi.NewThrottle(30, time.Minute)
	throttle.StartCleanup(time.Hour)

	public := router.PathPrefix("/api/v1").Subrouter()
	public.Use(httpapi.ThrottleMiddleware(throttle, log))
	accountsService.RegisterPublicRoutes(public)

	authed := router.PathPrefix("/api/v1").Subrouter()
	authed.Use(httpapi.AuthMiddleware(tokens, log))
	accountsService.RegisterRoutes(authed)
	bookingService.RegisterRoutes(authed)
	inboxService.RegisterRoutes(authed)

	return &Server{
		config: cfg,
		logger: log,
		db:     db,
		health: health,
		server: &http.Server{
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		},
	}, nil
}

// Start begins serving HTTP on the given address and blocks until the
// listener stops.
func (s *Server) Start(addr string) error {
	s.server.Addr = addr
	s.logger.Infof("Starting booking service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop shuts the listener down gracefully and closes the database
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if dbErr := s.db.Close(); err == nil {
		err = dbErr
	}
	return err
}
