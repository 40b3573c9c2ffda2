package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mergington/internal/activities/metrics"
	"mergington/internal/activities/models"
	dErrors "mergington/pkg/domain-errors"
	"mergington/pkg/email"
	"mergington/pkg/platform/sentinel"
	"mergington/pkg/requestcontext"
)

const tracerName = "mergington/internal/activities"

// Store is the registry the service orchestrates.
type Store interface {
	ListAll(ctx context.Context) (models.Catalog, error)
	FindByName(ctx context.Context, name string) (*models.Activity, error)
	Execute(ctx context.Context, name string, validate func(*models.Activity) error, mutate func(*models.Activity)) (*models.Activity, error)
}

// Service exposes the registry operations: list, read one roster, signup.
type Service struct {
	activities Store
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(activities Store, opts ...Option) *Service {
	s := &Service{
		activities: activities,
		logger:     slog.New(slog.DiscardHandler),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a snapshot of every activity keyed by name.
func (s *Service) List(ctx context.Context) (models.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "activities.List")
	defer span.End()

	catalog, err := s.activities.ListAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "list failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list activities")
	}
	span.SetAttributes(attribute.Int("activity.count", len(catalog)))
	if s.metrics != nil {
		s.metrics.SetActivities(len(catalog))
	}
	return catalog, nil
}

// Get returns one activity and its roster.
func (s *Service) Get(ctx context.Context, name string) (*models.Activity, error) {
	ctx, span := s.tracer.Start(ctx, "activities.Get",
		trace.WithAttributes(attribute.String("activity.name", name)))
	defer span.End()

	a, err := s.activities.FindByName(ctx, name)
	if err != nil {
		return nil, wrapActivityErr(err)
	}
	return a, nil
}

// Signup registers a student for an activity. Checks run in a fixed order and
// the first failure wins: email shape, activity existence, duplicate, capacity.
//
// The existence, duplicate and capacity checks and the append all run inside
// the store's Execute, so concurrent signups cannot overfill a roster.
func (s *Service) Signup(ctx context.Context, activityName, rawEmail string) (*models.SignupResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "activities.Signup",
		trace.WithAttributes(attribute.String("activity.name", activityName)))
	defer span.End()
	if s.metrics != nil {
		defer s.metrics.ObserveSignup(start)
	}

	addr, err := email.Normalize(rawEmail)
	if err != nil {
		s.recordFailure(ctx, span, activityName, err)
		return nil, err
	}

	_, err = s.activities.Execute(ctx, activityName,
		func(a *models.Activity) error {
			return a.CanEnroll(addr)
		},
		func(a *models.Activity) {
			a.ApplyEnrollment(addr)
		},
	)
	if err != nil {
		err = wrapActivityErr(err)
		s.recordFailure(ctx, span, activityName, err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "student signed up",
		"request_id", requestcontext.RequestID(ctx),
		"activity", activityName,
		"email", addr,
	)
	s.incrementSignup(metrics.OutcomeSuccess)
	span.SetAttributes(attribute.String("signup.outcome", metrics.OutcomeSuccess))

	return &models.SignupResult{Email: addr, Activity: activityName}, nil
}

func (s *Service) recordFailure(ctx context.Context, span trace.Span, activityName string, err error) {
	outcome := outcomeFor(err)
	span.SetAttributes(attribute.String("signup.outcome", outcome))
	s.incrementSignup(outcome)

	if outcome == metrics.OutcomeError {
		span.RecordError(err)
		span.SetStatus(codes.Error, "signup failed")
		s.logger.ErrorContext(ctx, "signup failed",
			"request_id", requestcontext.RequestID(ctx),
			"activity", activityName,
			"error", err,
		)
		return
	}
	s.logger.WarnContext(ctx, "signup rejected",
		"request_id", requestcontext.RequestID(ctx),
		"activity", activityName,
		"reason", outcome,
	)
}

func (s *Service) incrementSignup(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementSignup(outcome)
	}
}

func outcomeFor(err error) string {
	de, ok := dErrors.As(err)
	if !ok {
		return metrics.OutcomeError
	}
	switch de.Code {
	case dErrors.CodeInvalidInput:
		return metrics.OutcomeInvalidEmail
	case dErrors.CodeNotFound:
		return metrics.OutcomeNotFound
	case dErrors.CodeAlreadyRegistered:
		return metrics.OutcomeAlreadyRegistered
	case dErrors.CodeFull:
		return metrics.OutcomeFull
	default:
		return metrics.OutcomeError
	}
}

// wrapActivityErr converts store sentinels into client-facing domain errors.
// Domain errors raised by model validation pass through unchanged.
func wrapActivityErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.ErrActivityNotFound
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "activity registry failure")
}
