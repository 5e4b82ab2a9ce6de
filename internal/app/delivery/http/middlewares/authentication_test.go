package middlewares

import (
	"context"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRedisRepository struct {
	store map[string]string
}

func (r *stubRedisRepository) Delete(ctx context.Context, key string) error { return nil }
func (r *stubRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}
func (r *stubRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return r.store[key], nil
}
func (r *stubRedisRepository) Increment(ctx context.Context, key string) (int64, error) {
	return 0, nil
}

const testJWTSecret = "test-secret"

func signedToken(t *testing.T, sessionID string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func newAuthFixture(t *testing.T) (*Middlewares, *stubRedisRepository) {
	t.Helper()
	session := models.Session{
		SessionID: "sess-1",
		UserID:    "user-1",
		RoleName:  "technician",
	}
	body, err := json.Marshal(session)
	require.NoError(t, err)

	redis := &stubRedisRepository{store: map[string]string{
		constvars.RedisKeySessionPrefix + "sess-1": string(body),
	}}
	middlewares := New(zap.NewNop(), redis, &config.InternalConfig{
		JWT: config.JWT{Secret: testJWTSecret},
	})
	return middlewares, redis
}

func TestAuthenticate(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		require.True(t, ok, "session should be set in context")
		assert.Equal(t, "user-1", session.UserID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token loads session", func(t *testing.T) {
		middlewares, _ := newAuthFixture(t)
		req := httptest.NewRequest("GET", "/api/v1/lab/worklist", nil)
		req.Header.Set(constvars.HeaderAuth, "Bearer "+signedToken(t, "sess-1", time.Hour))

		rr := httptest.NewRecorder()
		middlewares.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		middlewares, _ := newAuthFixture(t)
		req := httptest.NewRequest("GET", "/api/v1/lab/worklist", nil)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		middlewares, _ := newAuthFixture(t)
		req := httptest.NewRequest("GET", "/api/v1/lab/worklist", nil)
		req.Header.Set(constvars.HeaderAuth, "Bearer "+signedToken(t, "sess-1", -time.Hour))

		rr := httptest.NewRecorder()
		middlewares.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown session is unauthorized", func(t *testing.T) {
		middlewares, _ := newAuthFixture(t)
		req := httptest.NewRequest("GET", "/api/v1/lab/worklist", nil)
		req.Header.Set(constvars.HeaderAuth, "Bearer "+signedToken(t, "sess-unknown", time.Hour))

		rr := httptest.NewRecorder()
		middlewares.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	middlewares, _ := newAuthFixture(t)

	t.Run("generates request id when absent", func(t *testing.T) {
		var seen string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			require.True(t, ok)
			seen = requestID
		})

		req := httptest.NewRequest("GET", "/api/v1/lab/test-results", nil)
		rr := httptest.NewRecorder()
		middlewares.RequestIDMiddleware(handler).ServeHTTP(rr, req)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("keeps client supplied request id", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			assert.Equal(t, "client-id-42", requestID)
			isClient, _ := r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
			assert.True(t, isClient)
		})

		req := httptest.NewRequest("GET", "/api/v1/lab/test-results", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-42")
		rr := httptest.NewRecorder()
		middlewares.RequestIDMiddleware(handler).ServeHTTP(rr, req)

		assert.Equal(t, "client-id-42", rr.Header().Get(constvars.HeaderXRequestID))
	})
}
