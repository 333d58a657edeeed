package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NotNil(t, v)
}

func TestValidation_CheckoutShapedInput(t *testing.T) {
	type parentInput struct {
		Email     string `json:"email" binding:"required,email"`
		FirstName string `json:"first_name" binding:"required"`
	}
	type checkoutInput struct {
		CampID string      `json:"camp_id" binding:"required,uuid"`
		Parent parentInput `json:"parent" binding:"required"`
	}

	SetupValidator()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/checkout", func(c *gin.Context) {
		var req checkoutInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("invalid input yields field-level details with JSON names", func(t *testing.T) {
		w := post(`{"camp_id": "not-a-uuid", "parent": {"email": "nope", "first_name": ""}}`)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code    string `json:"code"`
				Message string `json:"message"`
				Details []struct {
					Field   string `json:"field"`
					Message string `json:"message"`
				} `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.False(t, resp.Success)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 3)

		fields := make(map[string]string)
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "Invalid UUID format", fields["camp_id"])
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Equal(t, "This field is required", fields["first_name"])
	})

	t.Run("valid input passes through", func(t *testing.T) {
		w := post(`{"camp_id": "550e8400-e29b-41d4-a716-446655440000", "parent": {"email": "morgan@example.com", "first_name": "Morgan"}}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestValidationMessage(t *testing.T) {
	type campForm struct {
		Slug     string `binding:"required"`
		Contact  string `binding:"email"`
		Name     string `binding:"min=5"`
		Notes    string `binding:"max=10"`
		Code     string `binding:"len=5"`
		TenantID string `binding:"uuid"`
		Status   string `binding:"oneof=draft published archived"`
		Capacity int    `binding:"gte=10"`
		Website  string `binding:"url"`
		Zip      string `binding:"numeric"`
	}

	expected := map[string]string{
		"Slug":     "This field is required",
		"Contact":  "Invalid email format",
		"Name":     "Must be at least 5 characters",
		"Notes":    "Must be at most 10 characters",
		"Code":     "Must be exactly 5 characters",
		"TenantID": "Invalid UUID format",
		"Status":   "Must be one of: draft published archived",
		"Capacity": "Must be greater than or equal to 10",
		"Website":  "Invalid URL format",
		"Zip":      "Must be numeric",
	}

	v := validator.New()
	v.SetTagName("binding")
	err := v.Struct(campForm{
		Contact:  "not-an-email",
		Name:     "abc",
		Notes:    "far too many characters here",
		Code:     "ab",
		TenantID: "not-a-uuid",
		Status:   "pending",
		Capacity: 3,
		Website:  "not a url",
		Zip:      "abc",
	})
	require.Error(t, err)

	validationErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	for _, e := range validationErrs {
		want, known := expected[e.StructField()]
		if !known {
			continue
		}
		t.Run(e.StructField(), func(t *testing.T) {
			assert.Equal(t, want, validationMessage(e))
		})
	}
}

func TestValidationMessage_UnknownTag(t *testing.T) {
	type form struct {
		IP string `binding:"ip"`
	}

	v := validator.New()
	v.SetTagName("binding")
	err := v.Struct(form{IP: "not-an-ip"})
	require.Error(t, err)

	validationErrs := err.(validator.ValidationErrors)
	require.Len(t, validationErrs, 1)
	assert.Equal(t, "Invalid value", validationMessage(validationErrs[0]))
}

func TestHandleValidationError_NonValidatorError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/checkout", func(c *gin.Context) {
		type input struct {
			Campers []string `json:"campers"`
		}
		var in input
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
	})

	// Malformed JSON produces a syntax error, not validator.ValidationErrors;
	// the response is still a well-formed 400
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"campers": [`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
