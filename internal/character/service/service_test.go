package service

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"rickmorty/internal/character/metrics"
	"rickmorty/internal/character/models"
	"rickmorty/internal/character/repository"
	"rickmorty/internal/character/upstream"
	"rickmorty/internal/character/upstream/upstreamtest"
	"rickmorty/pkg/testutil"
)

// =============================================================================
// Stub Implementations
// =============================================================================

type stubRepository struct {
	listAllFunc      func(ctx context.Context) (models.Collection, error)
	getByIDFunc      func(ctx context.Context, id int) (*models.Character, error)
	listByStatusFunc func(ctx context.Context, status string) (models.Collection, error)

	listAllCalls      atomic.Int32
	listByStatusCalls atomic.Int32
}

func (r *stubRepository) ListAll(ctx context.Context) (models.Collection, error) {
	r.listAllCalls.Add(1)
	return r.listAllFunc(ctx)
}

func (r *stubRepository) GetByID(ctx context.Context, id int) (*models.Character, error) {
	return r.getByIDFunc(ctx, id)
}

func (r *stubRepository) ListByStatus(ctx context.Context, status string) (models.Collection, error) {
	r.listByStatusCalls.Add(1)
	return r.listByStatusFunc(ctx, status)
}

var fixture = models.Collection{
	{ID: 11, Name: "Albert Einstein", Species: "Human", Status: "Alive", Origin: models.Origin{Name: "Earth (C-137)", URL: "https://rickandmortyapi.com/api/location/1"}},
	{ID: 20, Name: "Ants in my Eyes Johnson", Species: "Human", Status: "Alive", Origin: models.Origin{Name: "unknown"}},
	{ID: 1, Name: "Rick Sanchez", Species: "Human", Status: "Dead", Origin: models.Origin{Name: "Earth (C-137)", URL: "https://rickandmortyapi.com/api/location/1"}},
}

// =============================================================================
// Suite
// =============================================================================

type ServiceSuite struct {
	suite.Suite
	repo    *stubRepository
	metrics *metrics.Metrics
	svc     *Service
	ctx     context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.repo = &stubRepository{
		listAllFunc: func(context.Context) (models.Collection, error) { return fixture, nil },
		getByIDFunc: func(_ context.Context, id int) (*models.Character, error) {
			for i := range fixture {
				if fixture[i].ID == id {
					c := fixture[i]
					return &c, nil
				}
			}
			return nil, &models.NotFoundError{ID: id}
		},
		listByStatusFunc: func(context.Context, string) (models.Collection, error) { return fixture, nil },
	}
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.svc = New(s.repo, WithMetrics(s.metrics))
	s.ctx = context.Background()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestGetAllCharacters() {
	got, err := s.svc.GetAllCharacters(s.ctx)
	s.Require().NoError(err)
	s.Equal(fixture, got)
}

func (s *ServiceSuite) TestGetCharacterByID() {
	s.Run("returns matching id", func() {
		got, err := s.svc.GetCharacterByID(s.ctx, 20)
		s.Require().NoError(err)
		s.Equal(20, got.ID)
	})

	s.Run("propagates NotFoundError", func() {
		_, err := s.svc.GetCharacterByID(s.ctx, 404)
		var nf *models.NotFoundError
		s.Require().True(errors.As(err, &nf))
		s.Equal(404, nf.ID)
	})
}

func (s *ServiceSuite) TestGetCharactersByStatusReturnsUpstreamResultUnfiltered() {
	got, err := s.svc.GetCharactersByStatus(s.ctx, "Dead")
	s.Require().NoError(err)
	s.Len(got, 3, "records with other statuses must be kept")
	s.Equal(int32(1), s.repo.listByStatusCalls.Load())
	s.Equal(int32(0), s.repo.listAllCalls.Load())
}

func (s *ServiceSuite) TestGetSpeciesStatistic() {
	s.Run("counts locally over the full collection", func() {
		got, err := s.svc.GetSpeciesStatistic(s.ctx, "Alive", "Human")
		s.Require().NoError(err)
		s.Equal(2, got)
		s.Equal(int32(0), s.repo.listByStatusCalls.Load())
	})

	s.Run("zero matches", func() {
		got, err := s.svc.GetSpeciesStatistic(s.ctx, "Alive", "Alien")
		s.Require().NoError(err)
		s.Zero(got)
	})

	s.Equal(2.0, promtestutil.ToFloat64(s.metrics.StatisticsComputedTotal))
}

func (s *ServiceSuite) TestErrorsPropagateUnchanged() {
	upstreamErr := &models.UpstreamError{Path: "character", StatusCode: http.StatusServiceUnavailable}
	decodeErr := models.NewDecodeError("results", nil, errors.New("missing required field"))

	s.repo.listAllFunc = func(context.Context) (models.Collection, error) { return nil, upstreamErr }
	s.repo.listByStatusFunc = func(context.Context, string) (models.Collection, error) { return nil, decodeErr }

	_, err := s.svc.GetAllCharacters(s.ctx)
	s.Same(upstreamErr, err)

	count, err := s.svc.GetSpeciesStatistic(s.ctx, "Alive", "Human")
	s.Same(upstreamErr, err)
	s.Zero(count)

	_, err = s.svc.GetCharactersByStatus(s.ctx, "Alive")
	s.Same(decodeErr, err)

	s.Zero(promtestutil.ToFloat64(s.metrics.StatisticsComputedTotal))
}

// =============================================================================
// Against the fake upstream
// =============================================================================

func newUpstreamService(t *testing.T) (*Service, *upstreamtest.Server) {
	t.Helper()
	srv := upstreamtest.NewServer(t)
	client, err := upstream.New(srv.URL())
	require.NoError(t, err)
	return New(repository.New(client)), srv
}

func TestSpeciesStatisticFetchesUnfilteredCollection(t *testing.T) {
	svc, srv := newUpstreamService(t)
	srv.EnqueueJSON(http.StatusOK, upstreamtest.StatisticCollection)

	count, err := svc.GetSpeciesStatistic(context.Background(), "Alive", "Human")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/character", reqs[0].Path)
	assert.Empty(t, reqs[0].Query, "statistic must not ask upstream to filter")
}

func TestStatusQueryDelegatesFiltering(t *testing.T) {
	svc, srv := newUpstreamService(t)
	srv.EnqueueJSON(http.StatusOK, upstreamtest.StatisticCollection)

	got, err := svc.GetCharactersByStatus(context.Background(), "Dead")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "Dead", srv.Requests()[0].Query.Get("status"))
}

func TestConcurrentQueriesAreIndependent(t *testing.T) {
	svc, srv := newUpstreamService(t)
	const n = 20
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			srv.EnqueueJSON(http.StatusOK, upstreamtest.StatisticCollection)
		} else {
			srv.EnqueueJSON(http.StatusBadGateway, "")
		}
	}

	result := testutil.RunConcurrentCtx(context.Background(), n, func(ctx context.Context, _ int) error {
		count, err := svc.GetSpeciesStatistic(ctx, "Alive", "Human")
		if err == nil && count != 2 {
			return errors.New("unexpected count")
		}
		return err
	})

	assert.Equal(t, int32(n/2), result.Successes)
	assert.Equal(t, int32(n/2), result.UpstreamErrors)
	assert.Zero(t, result.Errors)
}
