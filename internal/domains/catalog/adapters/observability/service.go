package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/pawhaven/adoption-api/internal/domains/catalog/application/types"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/domain"
	"github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog application port with tracing, logging, and metrics.
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

// Search runs the catalog query with instrumentation.
func (s *Service) Search(ctx context.Context, input types.SearchInput) (*types.PetPage, error) {
	ctx, span := s.startSpan(ctx, "Service.Search")
	defer span.End()

	result, err := s.inner.Search(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "catalog search failed")
	}
	span.SetAttributes(
		attribute.Int64("catalog.total", result.Total),
		attribute.Int("catalog.pages", result.Pages),
		attribute.Int("catalog.page_items", len(result.Items)),
	)
	s.metrics.recordSearch(ctx)
	s.logInfo(ctx, "catalog searched", slog.Int64("total", result.Total), slog.Int("items", len(result.Items)))
	return result, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet", slog.Int64("pet.id", input.ID))
	}
	return result, nil
}

// Add persists a new pet aggregate with instrumentation.
func (s *Service) Add(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Add")
	defer span.End()

	result, err := s.inner.Add(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add pet")
	}
	if result != nil && result.Pet != nil {
		s.metrics.recordCreated(ctx, result.Pet.Status)
		s.logInfo(ctx, "pet added", slog.Int64("pet.id", result.Pet.ID), slog.String("status", string(result.Pet.Status)))
	}
	return result, nil
}

// Update applies a partial edit to an existing pet.
func (s *Service) Update(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Update", attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update pet", slog.Int64("pet.id", input.ID))
	}
	if result != nil && result.Pet != nil {
		s.metrics.recordUpdated(ctx, result.Pet.Status)
		s.logInfo(ctx, "pet updated", slog.Int64("pet.id", result.Pet.ID))
	}
	return result, nil
}

// Delete removes a pet.
func (s *Service) Delete(ctx context.Context, input types.PetIdentifier) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.Int64("pet.id", input.ID))
	defer span.End()

	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete pet", slog.Int64("pet.id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "pet deleted", slog.Int64("pet.id", input.ID))
	return nil
}

// List exposes all pets.
func (s *Service) List(ctx context.Context) ([]*types.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	return result, nil
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
	searches    metric.Int64Counter
	petsCreated metric.Int64Counter
	petsUpdated metric.Int64Counter
	petsDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	searches, _ := m.Int64Counter("catalog.service.searches", metric.WithDescription("Number of catalog searches"))
	created, _ := m.Int64Counter("catalog.service.created", metric.WithDescription("Number of pets created"))
	updated, _ := m.Int64Counter("catalog.service.updated", metric.WithDescription("Number of pets updated"))
	deleted, _ := m.Int64Counter("catalog.service.deleted", metric.WithDescription("Number of pets deleted"))
	return serviceMetrics{
		searches:    searches,
		petsCreated: created,
		petsUpdated: updated,
		petsDeleted: deleted,
	}
}

func (m serviceMetrics) recordSearch(ctx context.Context) {
	addCounter(ctx, m.searches, 1)
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.petsCreated, 1, attribute.String("pet.status", string(status)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.petsUpdated, 1, attribute.String("pet.status", string(status)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.petsDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
