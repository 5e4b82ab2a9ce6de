package middlewares

import (
	"context"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
)

// Authenticate validates the bearer token issued by the external auth
// collaborator and loads the matching session from Redis. The session
// id lives in the token subject.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuth)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(m.InternalConfig.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		sessionKey := constvars.RedisKeySessionPrefix + claims.Subject
		sessionData, err := m.RedisRepository.Get(r.Context(), sessionKey)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if sessionData == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(nil))
			return
		}

		session := new(models.Session)
		err = json.Unmarshal([]byte(sessionData), session)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrMissingSessionData(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
