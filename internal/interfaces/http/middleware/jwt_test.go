package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/camphq/backend/internal/infrastructure/auth"
	"github.com/camphq/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtTestSecret = "0123456789abcdef0123456789abcdef"

func newJWTTestService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret: jwtTestSecret,
		Issuer: "camphq",
	})
}

func signTestToken(t *testing.T, subject string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "camphq",
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: "dana@example.com",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtTestSecret))
	require.NoError(t, err)
	return signed
}

func setupJWTRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"account_id": GetJWTAccountID(c),
			"email":      GetJWTEmail(c),
		})
	})
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newJWTTestService()
	accountID := uuid.New().String()

	t.Run("allows request with valid token", func(t *testing.T) {
		router := setupJWTRouter(JWTAuthMiddleware(svc))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+signTestToken(t, accountID, time.Hour))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), accountID)
	})

	t.Run("rejects request without authorization header", func(t *testing.T) {
		router := setupJWTRouter(JWTAuthMiddleware(svc))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("rejects malformed authorization header", func(t *testing.T) {
		router := setupJWTRouter(JWTAuthMiddleware(svc))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Token abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects expired token with TOKEN_EXPIRED code", func(t *testing.T) {
		router := setupJWTRouter(JWTAuthMiddleware(svc))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+signTestToken(t, accountID, -time.Minute))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("skips configured paths", func(t *testing.T) {
		cfg := DefaultJWTConfig(svc)
		cfg.SkipPaths = append(cfg.SkipPaths, "/protected")
		router := setupJWTRouter(JWTAuthMiddlewareWithConfig(cfg))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("skips configured path prefixes", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		cfg := DefaultJWTConfig(svc)
		router := gin.New()
		router.Use(JWTAuthMiddlewareWithConfig(cfg))
		router.GET("/api/v1/camps/summer-hoops", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/camps/summer-hoops", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invokes custom error handler", func(t *testing.T) {
		cfg := DefaultJWTConfig(svc)
		cfg.OnError = func(c *gin.Context, err error) {
			c.AbortWithStatus(http.StatusTeapot)
		}
		router := setupJWTRouter(JWTAuthMiddlewareWithConfig(cfg))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	svc := newJWTTestService()
	accountID := uuid.New().String()

	t.Run("extracts claims when token present", func(t *testing.T) {
		router := setupJWTRouter(OptionalJWTAuthMiddleware(svc))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+signTestToken(t, accountID, time.Hour))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), accountID)
	})

	t.Run("continues without token", func(t *testing.T) {
		router := setupJWTRouter(OptionalJWTAuthMiddleware(svc))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, GetJWTAccountID(&gin.Context{}))
	})

	t.Run("continues with invalid token", func(t *testing.T) {
		router := setupJWTRouter(OptionalJWTAuthMiddleware(svc))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"garbage")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetJWTClaims(t *testing.T) {
	t.Run("returns nil when absent", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Nil(t, GetJWTClaims(c))
	})

	t.Run("returns stored claims", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		claims := &auth.Claims{Email: "dana@example.com"}
		c.Set(JWTClaimsKey, claims)
		assert.Equal(t, claims, GetJWTClaims(c))
	})
}
