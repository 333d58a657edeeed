package handler

import (
	appregistration "github.com/camphq/backend/internal/application/registration"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegistrationHandler handles registration management endpoints
type RegistrationHandler struct {
	BaseHandler
	registrationService *appregistration.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrationService *appregistration.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// GetRegistration godoc
// @ID           getRegistration
// @Summary      Get a registration
// @Tags         registrations
// @Produce      json
// @Param        id  path  string  true  "Registration ID"
// @Success      200  {object}  APIResponse[appregistration.RegistrationResponse]
// @Failure      404  {object}  ErrorResponse
// @Router       /registrations/{id} [get]
func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid registration ID")
		return
	}

	response, err := h.registrationService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// ListRegistrations godoc
// @ID           listRegistrations
// @Summary      List registrations
// @Description  Lists registrations for the tenant, optionally filtered by camp, parent profile, or status
// @Tags         registrations
// @Produce      json
// @Param        camp_id     query  string  false  "Filter by camp"
// @Param        profile_id  query  string  false  "Filter by parent profile"
// @Param        status      query  string  false  "Filter by status"  Enums(pending, confirmed, cancelled)
// @Success      200  {object}  APIResponse[[]appregistration.RegistrationResponse]
// @Router       /registrations [get]
func (h *RegistrationHandler) ListRegistrations(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	var filter appregistration.RegistrationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	responses, err := h.registrationService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, responses)
}

// CancelRegistration godoc
// @ID           cancelRegistration
// @Summary      Cancel a registration
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Registration ID"
// @Param        request  body  appregistration.CancelRegistrationRequest  true  "Cancellation reason"
// @Success      200  {object}  APIResponse[appregistration.RegistrationResponse]
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse  "Registration not cancellable"
// @Router       /registrations/{id}/cancel [post]
func (h *RegistrationHandler) CancelRegistration(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid registration ID")
		return
	}

	var req appregistration.CancelRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.registrationService.Cancel(c.Request.Context(), tenantID, id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}
