package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	t.Run("maps known codes", func(t *testing.T) {
		tests := []struct {
			code     string
			expected int
		}{
			{ErrCodeUnknown, http.StatusInternalServerError},
			{ErrCodeInternal, http.StatusInternalServerError},
			{ErrCodeValidation, http.StatusBadRequest},
			{ErrCodeValidationRequired, http.StatusBadRequest},
			{ErrCodeUnauthorized, http.StatusUnauthorized},
			{ErrCodeForbidden, http.StatusForbidden},
			{ErrCodeTokenExpired, http.StatusUnauthorized},
			{ErrCodeNotFound, http.StatusNotFound},
			{ErrCodeAlreadyExists, http.StatusConflict},
			{ErrCodeConflict, http.StatusConflict},
			{ErrCodeConcurrencyConflict, http.StatusConflict},
			{ErrCodeInvalidState, http.StatusUnprocessableEntity},
			{ErrCodeBusinessRule, http.StatusUnprocessableEntity},
			{ErrCodeBadRequest, http.StatusBadRequest},
			{ErrCodeInvalidInput, http.StatusBadRequest},
			{ErrCodeRateLimited, http.StatusTooManyRequests},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code), tt.code)
		}
	})

	t.Run("maps checkout-facing codes", func(t *testing.T) {
		// The storefront treats a full camp like any other rejected
		// submission, so capacity failures are a 400, not a conflict
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeCampFull))
		assert.Equal(t, http.StatusBadGateway, GetHTTPStatus(ErrCodePaymentFailed))
		assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeDuplicateRequest))
		assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodePromoNotFound))
		assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodePromoNotActive))
	})

	t.Run("falls back to 500 for unknown codes", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("NO_SUCH_CODE"))
	})
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("translates domain codes", func(t *testing.T) {
		tests := map[string]string{
			"NOT_FOUND":            ErrCodeNotFound,
			"ALREADY_EXISTS":       ErrCodeAlreadyExists,
			"INVALID_INPUT":        ErrCodeInvalidInput,
			"INVALID_STATE":        ErrCodeInvalidState,
			"INVALID_STATUS":       ErrCodeInvalidState,
			"UNAUTHORIZED":         ErrCodeUnauthorized,
			"FORBIDDEN":            ErrCodeForbidden,
			"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
			"VALIDATION_ERROR":     ErrCodeValidation,
			"BAD_REQUEST":          ErrCodeBadRequest,
			"INTERNAL_ERROR":       ErrCodeInternal,
		}
		for input, expected := range tests {
			assert.Equal(t, expected, NormalizeErrorCode(input), input)
		}
	})

	t.Run("checkout-facing codes pass through unchanged", func(t *testing.T) {
		for _, code := range []string{
			ErrCodeCampFull,
			ErrCodePaymentFailed,
			ErrCodeDuplicateRequest,
			ErrCodePromoNotFound,
			ErrCodePromoNotActive,
		} {
			assert.Equal(t, code, NormalizeErrorCode(code))
		}
	})

	t.Run("already-normalized and unknown codes pass through", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
		assert.Equal(t, "CUSTOM_ERROR", NormalizeErrorCode("CUSTOM_ERROR"))
	})
}

// Every declared code must resolve to a real HTTP status, otherwise a new
// error silently becomes a 500.
func TestEveryCodeHasAStatus(t *testing.T) {
	allCodes := []string{
		ErrCodeUnknown,
		ErrCodeInternal,
		ErrCodeValidation,
		ErrCodeValidationRequired,
		ErrCodeValidationFormat,
		ErrCodeUnauthorized,
		ErrCodeForbidden,
		ErrCodeTokenExpired,
		ErrCodeTokenInvalid,
		ErrCodeNotFound,
		ErrCodeAlreadyExists,
		ErrCodeConflict,
		ErrCodeConcurrencyConflict,
		ErrCodeInvalidState,
		ErrCodeBusinessRule,
		ErrCodeCampFull,
		ErrCodePaymentFailed,
		ErrCodeDuplicateRequest,
		ErrCodePromoNotFound,
		ErrCodePromoNotActive,
		ErrCodeBadRequest,
		ErrCodeInvalidInput,
		ErrCodeInvalidJSON,
		ErrCodeRateLimited,
	}

	for _, code := range allCodes {
		status, ok := ErrorCodeHTTPStatus[code]
		assert.True(t, ok, "code %s has no HTTP status mapping", code)
		assert.GreaterOrEqual(t, status, 400, "code %s maps to non-error status %d", code, status)
	}
}

func TestNewErrorResponse(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponse("NOT_FOUND", "Camp not found")
	after := time.Now()

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code, "domain code should be normalized")
	assert.Equal(t, "Camp not found", resp.Error.Message)
	assert.False(t, resp.Error.Timestamp.Before(before))
	assert.False(t, resp.Error.Timestamp.After(after))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeCampFull, "Not enough spots available", "req-123-456")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeCampFull, resp.Error.Code)
	assert.Equal(t, "Not enough spots available", resp.Error.Message)
	assert.Equal(t, "req-123-456", resp.Error.RequestID)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "parent.email", Message: "Invalid email format"},
		{Field: "campers", Message: "This field is required"},
	}

	resp := NewValidationErrorResponse("Validation failed", "req-789", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "Validation failed", resp.Error.Message)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "parent.email", resp.Error.Details[0].Field)
	assert.Equal(t, "Invalid email format", resp.Error.Details[0].Message)
}

func TestNewErrorResponseWithHelp(t *testing.T) {
	help := "https://docs.example.com/errors/auth"
	resp := NewErrorResponseWithHelp(ErrCodeUnauthorized, "Not authenticated", "req-001", help)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeUnauthorized, resp.Error.Code)
	assert.Equal(t, "Not authenticated", resp.Error.Message)
	assert.Equal(t, help, resp.Error.Help)
}

func TestErrorResponseJSONRoundTrip(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Camp not found", "req-test-123")

	data, err := json.Marshal(resp)
	assert.NoError(t, err)

	var decoded Response
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.False(t, decoded.Success)
	assert.Equal(t, ErrCodeNotFound, decoded.Error.Code)
	assert.Equal(t, "Camp not found", decoded.Error.Message)
	assert.Equal(t, "req-test-123", decoded.Error.RequestID)
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"slug": "summer-soccer"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Meta)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("fills pagination meta", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"reg1", "reg2"}, 100, 1, 10)

		assert.True(t, resp.Success)
		assert.Nil(t, resp.Error)
		assert.Equal(t, int64(100), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.Page)
		assert.Equal(t, 10, resp.Meta.PageSize)
		assert.Equal(t, 10, resp.Meta.TotalPages)
	})

	t.Run("computes total pages", func(t *testing.T) {
		tests := []struct {
			total         int64
			pageSize      int
			expectedPages int
			expectedSize  int
		}{
			{100, 10, 10, 10},
			{101, 10, 11, 10},
			{0, 10, 0, 10},
			{9, 10, 1, 10},
			{10, 10, 1, 10},
			{11, 10, 2, 10},
			{100, 0, 5, 20},
			{100, -1, 5, 20},
		}
		for _, tt := range tests {
			resp := NewSuccessResponseWithMeta(nil, tt.total, 1, tt.pageSize)
			assert.Equal(t, tt.expectedPages, resp.Meta.TotalPages, "total=%d size=%d", tt.total, tt.pageSize)
			assert.Equal(t, tt.expectedSize, resp.Meta.PageSize, "total=%d size=%d", tt.total, tt.pageSize)
		}
	})
}
