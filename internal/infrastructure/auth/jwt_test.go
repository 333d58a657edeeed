package auth

import (
	"testing"
	"time"

	"github.com/camphq/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: testSecret,
		Issuer: "camphq",
	})
}

// signToken builds a token the way the external auth provider would
func signToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(subject string) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "camphq",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: "dana@example.com",
		Name:  "Dana Whitfield",
	}
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := newTestService()
	accountID := uuid.New()

	t.Run("accepts a well-formed token", func(t *testing.T) {
		tokenString := signToken(t, validClaims(accountID.String()), testSecret)

		claims, err := svc.ValidateToken(tokenString)

		require.NoError(t, err)
		assert.Equal(t, accountID.String(), claims.Subject)
		assert.Equal(t, "dana@example.com", claims.Email)

		parsed, err := claims.GetAccountUUID()
		require.NoError(t, err)
		assert.Equal(t, accountID, parsed)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		claims := validClaims(accountID.String())
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

		_, err := svc.ValidateToken(signToken(t, claims, testSecret))

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		tokenString := signToken(t, validClaims(accountID.String()), "another-secret-another-secret-ab")

		_, err := svc.ValidateToken(tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token from another issuer", func(t *testing.T) {
		claims := validClaims(accountID.String())
		claims.Issuer = "someone-else"

		_, err := svc.ValidateToken(signToken(t, claims, testSecret))

		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("rejects a token without a subject", func(t *testing.T) {
		claims := validClaims("")

		_, err := svc.ValidateToken(signToken(t, claims, testSecret))

		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
