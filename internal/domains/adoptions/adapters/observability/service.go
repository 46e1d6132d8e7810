package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/pawhaven/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/adoptions/ports"
)

const tracerName = "github.com/pawhaven/adoption-api/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoptions application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Create claims a pet with instrumentation. Losing the claim race is
// recorded on its own counter since it is an expected outcome, not a fault.
func (s *Service) Create(ctx context.Context, input types.CreateAdoptionInput) (*types.AdoptionProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Create",
		attribute.Int64("pet.id", input.PetID),
		attribute.Int64("adopter.id", input.AdopterID),
	)
	defer span.End()

	result, err := s.inner.Create(ctx, input)
	if err != nil {
		s.metrics.recordClaimConflict(ctx, err)
		return nil, s.handleError(ctx, span, err, "adoption failed",
			slog.Int64("pet.id", input.PetID), slog.Int64("adopter.id", input.AdopterID))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "pet adopted",
		slog.Int64("adoption.id", result.Adoption.ID),
		slog.Int64("pet.id", input.PetID),
		slog.Int64("adopter.id", input.AdopterID))
	return result, nil
}

// GetByID loads a single adoption.
func (s *Service) GetByID(ctx context.Context, input types.AdoptionIdentifier) (*types.AdoptionProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("adoption.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load adoption", slog.Int64("adoption.id", input.ID))
	}
	return result, nil
}

// List returns adoptions matching the filter.
func (s *Service) List(ctx context.Context, filter types.ListFilter) ([]*types.AdoptionProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list adoptions")
	}
	span.SetAttributes(attribute.Int("adoption.result.count", len(result)))
	return result, nil
}

// UpdateNotes rewrites the shelter notes on an adoption.
func (s *Service) UpdateNotes(ctx context.Context, input types.UpdateNotesInput) (*types.AdoptionProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateNotes", attribute.Int64("adoption.id", input.ID))
	defer span.End()

	result, err := s.inner.UpdateNotes(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update adoption notes", slog.Int64("adoption.id", input.ID))
	}
	return result, nil
}

// Revert removes an adoption and releases its pet.
func (s *Service) Revert(ctx context.Context, input types.AdoptionIdentifier) error {
	ctx, span := s.startSpan(ctx, "Service.Revert", attribute.Int64("adoption.id", input.ID))
	defer span.End()

	if err := s.inner.Revert(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to revert adoption", slog.Int64("adoption.id", input.ID))
	}
	s.metrics.recordReverted(ctx)
	s.logInfo(ctx, "adoption reverted", slog.Int64("adoption.id", input.ID))
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	created   metric.Int64Counter
	reverted  metric.Int64Counter
	conflicts metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("adoptions.service.created", metric.WithDescription("Number of adoptions recorded"))
	reverted, _ := m.Int64Counter("adoptions.service.reverted", metric.WithDescription("Number of adoptions reverted"))
	conflicts, _ := m.Int64Counter("adoptions.service.claim_conflicts", metric.WithDescription("Number of claims lost to an existing adoption"))
	return serviceMetrics{created: created, reverted: reverted, conflicts: conflicts}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	addCounter(ctx, m.created, 1)
}

func (m serviceMetrics) recordReverted(ctx context.Context) {
	addCounter(ctx, m.reverted, 1)
}

func (m serviceMetrics) recordClaimConflict(ctx context.Context, err error) {
	if errors.Is(err, ports.ErrPetClaimed) {
		addCounter(ctx, m.conflicts, 1)
	}
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
