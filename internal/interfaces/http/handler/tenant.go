package handler

import (
	appidentity "github.com/camphq/backend/internal/application/identity"
	"github.com/camphq/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantHandler handles tenant management endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *appidentity.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *appidentity.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// SetTenantStatusRequest carries the target status for a tenant
type SetTenantStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

// CreateTenant godoc
// @ID           createTenant
// @Summary      Create a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request  body  appidentity.CreateTenantRequest  true  "Tenant details"
// @Success      201  {object}  APIResponse[appidentity.TenantResponse]
// @Failure      409  {object}  ErrorResponse  "Code or slug already exists"
// @Router       /admin/tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req appidentity.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.tenantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// GetTenant godoc
// @ID           getTenant
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Param        id  path  string  true  "Tenant ID"
// @Success      200  {object}  APIResponse[appidentity.TenantResponse]
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	response, err := h.tenantService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// ListTenants godoc
// @ID           listTenants
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Param        status     query  string  false  "Filter by status"  Enums(active, inactive, suspended)
// @Param        search     query  string  false  "Search by code, name, or slug"
// @Success      200  {object}  APIResponse[[]appidentity.TenantResponse]
// @Router       /admin/tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	var filter appidentity.TenantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	responses, total, err := h.tenantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, responses, total, page, pageSize)
}

// UpdateTenant godoc
// @ID           updateTenant
// @Summary      Update a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Tenant ID"
// @Param        request  body  appidentity.UpdateTenantRequest  true  "Tenant details"
// @Success      200  {object}  APIResponse[appidentity.TenantResponse]
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/tenants/{id} [put]
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req appidentity.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.tenantService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// SetTenantTaxRate godoc
// @ID           setTenantTaxRate
// @Summary      Change a tenant's sales tax rate
// @Description  The rate applies to taxable addons in future checkouts; existing registrations keep their stored tax
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Tenant ID"
// @Param        request  body  appidentity.SetTaxRateRequest  true  "Tax rate percent"
// @Success      200  {object}  APIResponse[appidentity.TenantResponse]
// @Failure      400  {object}  ErrorResponse  "Rate out of range"
// @Router       /admin/tenants/{id}/tax-rate [put]
func (h *TenantHandler) SetTenantTaxRate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req appidentity.SetTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.tenantService.SetTaxRate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// SetTenantStatus godoc
// @ID           setTenantStatus
// @Summary      Activate, deactivate, or suspend a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Tenant ID"
// @Param        request  body  SetTenantStatusRequest  true  "Target status"
// @Success      200  {object}  APIResponse[appidentity.TenantResponse]
// @Failure      422  {object}  ErrorResponse  "Invalid transition"
// @Router       /admin/tenants/{id}/status [put]
func (h *TenantHandler) SetTenantStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req SetTenantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.tenantService.SetStatus(c.Request.Context(), id, identity.TenantStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// MarkTenantDefault godoc
// @ID           markTenantDefault
// @Summary      Make the tenant the default for checkout resolution
// @Tags         tenants
// @Produce      json
// @Param        id  path  string  true  "Tenant ID"
// @Success      200  {object}  APIResponse[appidentity.TenantResponse]
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/tenants/{id}/default [post]
func (h *TenantHandler) MarkTenantDefault(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	response, err := h.tenantService.MarkDefault(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}
