package service

import (
	"context"
	"log/slog"

	"rickmorty/internal/character/metrics"
	"rickmorty/internal/character/models"
	"rickmorty/internal/character/stats"
	"rickmorty/internal/platform/tracer"
)

// Repository defines the character reads the service composes.
type Repository interface {
	ListAll(ctx context.Context) (models.Collection, error)
	GetByID(ctx context.Context, id int) (*models.Character, error)
	ListByStatus(ctx context.Context, status string) (models.Collection, error)
}

// Service answers the gateway's character queries. Errors from the
// repository are returned as-is so callers can match them with errors.As.
type Service struct {
	repo    Repository
	logger  *slog.Logger
	tracer  tracer.Tracer
	metrics *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer sets the tracer for the service.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithMetrics enables statistic counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a character query service.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.New(slog.DiscardHandler),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllCharacters returns the upstream collection unchanged.
func (s *Service) GetAllCharacters(ctx context.Context) (result models.Collection, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanQueryAll)
	defer func() { span.End(err) }()

	result, err = s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.Int(tracer.AttrResultCount, len(result)))
	return result, nil
}

// GetCharacterByID returns a single character or a *models.NotFoundError.
func (s *Service) GetCharacterByID(ctx context.Context, id int) (result *models.Character, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanQueryByID, tracer.Int(tracer.AttrCharacterID, id))
	defer func() { span.End(err) }()

	return s.repo.GetByID(ctx, id)
}

// GetCharactersByStatus delegates status filtering to upstream.
func (s *Service) GetCharactersByStatus(ctx context.Context, status string) (result models.Collection, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanQueryByStatus, tracer.String(tracer.AttrStatus, status))
	defer func() { span.End(err) }()

	result, err = s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.Int(tracer.AttrResultCount, len(result)))
	return result, nil
}

// GetSpeciesStatistic counts characters with the given status and species.
// Upstream cannot filter by species, so the full collection is fetched and
// both filters are applied locally.
func (s *Service) GetSpeciesStatistic(ctx context.Context, status, species string) (count int, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanQueryStatistic,
		tracer.String(tracer.AttrStatus, status),
		tracer.String(tracer.AttrSpecies, species),
	)
	defer func() { span.End(err) }()

	characters, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	count = stats.CountMatching(characters, status, species)
	span.SetAttributes(
		tracer.Int(tracer.AttrResultCount, len(characters)),
		tracer.Int(tracer.AttrMatchCount, count),
	)
	if s.metrics != nil {
		s.metrics.IncrementStatisticsComputed()
	}
	s.logger.DebugContext(ctx, "species statistic computed",
		"status", status,
		"species", species,
		"scanned", len(characters),
		"count", count,
	)
	return count, nil
}
