package activities

import (
	"log/slog"

	"mergington/internal/activities/handler"
	"mergington/internal/activities/metrics"
	"mergington/internal/activities/service"
)

// Service exposes the activity registry operations.
type Service = service.Service

// Handler wires HTTP endpoints to the activities service.
type Handler = handler.Handler

// NewService constructs the activities service over a registry store.
func NewService(store service.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return service.New(store, service.WithLogger(logger), service.WithMetrics(m))
}

// NewHandler constructs the HTTP handler for the activities routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
