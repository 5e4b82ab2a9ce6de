package routers

import (
	"context"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/app/services/labtests"
	"medilab-service/internal/app/services/worklists"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type emptyRedisRepository struct{}

func (r *emptyRedisRepository) Delete(ctx context.Context, key string) error { return nil }
func (r *emptyRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}
func (r *emptyRedisRepository) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (r *emptyRedisRepository) Increment(ctx context.Context, key string) (int64, error) {
	return 0, nil
}

func newTestRouter(maxRequests int) *chi.Mux {
	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:                   "v1",
			EndpointPrefix:            "api",
			MaxRequests:               maxRequests,
			MaxTimeRequestsPerSeconds: 1,
		},
	}
	httpMiddlewares := middlewares.New(zap.NewNop(), &emptyRedisRepository{}, internalConfig)

	router := chi.NewRouter()
	SetupRoutes(router, internalConfig, httpMiddlewares,
		&labtests.LabTestController{Log: zap.NewNop()},
		&worklists.WorklistController{Log: zap.NewNop()},
	)
	return router
}

func TestSetupRoutes(t *testing.T) {
	t.Run("lab routes are mounted behind authentication", func(t *testing.T) {
		router := newTestRouter(100)

		for _, path := range []string{
			"/api/v1/lab/test-results",
			"/api/v1/lab/barcode/LAB-1",
			"/api/v1/lab/worklist",
			"/api/v1/lab/dashboard-stats",
		} {
			req := httptest.NewRequest("GET", path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
		}
	})

	t.Run("unknown routes are 404", func(t *testing.T) {
		router := newTestRouter(100)

		req := httptest.NewRequest("GET", "/api/v1/lab/nope", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("requests beyond the configured limit are throttled", func(t *testing.T) {
		router := newTestRouter(1)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/lab/worklist", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/lab/worklist", nil))
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	})
}
