package handler

import (
	appcamp "github.com/camphq/backend/internal/application/camp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles addon and promo code management endpoints
type CatalogHandler struct {
	BaseHandler
	campService *appcamp.CampService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(campService *appcamp.CampService) *CatalogHandler {
	return &CatalogHandler{campService: campService}
}

// =============================================================================
// Addons
// =============================================================================

// CreateAddon godoc
// @ID           createAddon
// @Summary      Create an addon
// @Tags         addons
// @Accept       json
// @Produce      json
// @Param        request  body  appcamp.CreateAddonRequest  true  "Addon details"
// @Success      201  {object}  APIResponse[appcamp.AddonResponse]
// @Router       /admin/addons [post]
func (h *CatalogHandler) CreateAddon(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	var req appcamp.CreateAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.campService.CreateAddon(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// ListAddons godoc
// @ID           listAddons
// @Summary      List active addons for the tenant
// @Tags         addons
// @Produce      json
// @Success      200  {object}  APIResponse[[]appcamp.AddonResponse]
// @Router       /admin/addons [get]
func (h *CatalogHandler) ListAddons(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	responses, err := h.campService.ListAddons(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, responses)
}

// UpdateAddon godoc
// @ID           updateAddon
// @Summary      Update an addon
// @Tags         addons
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Addon ID"
// @Param        request  body  appcamp.UpdateAddonRequest  true  "Addon details"
// @Success      200  {object}  APIResponse[appcamp.AddonResponse]
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/addons/{id} [put]
func (h *CatalogHandler) UpdateAddon(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	addonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid addon ID")
		return
	}

	var req appcamp.UpdateAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.campService.UpdateAddon(c.Request.Context(), tenantID, addonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// DeactivateAddon godoc
// @ID           deactivateAddon
// @Summary      Retire an addon from new registrations
// @Tags         addons
// @Produce      json
// @Param        id  path  string  true  "Addon ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/addons/{id} [delete]
func (h *CatalogHandler) DeactivateAddon(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	addonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid addon ID")
		return
	}

	if err := h.campService.DeactivateAddon(c.Request.Context(), tenantID, addonID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// =============================================================================
// Promo codes
// =============================================================================

// CreatePromoCode godoc
// @ID           createPromoCode
// @Summary      Create a promo code
// @Tags         promo-codes
// @Accept       json
// @Produce      json
// @Param        request  body  appcamp.CreatePromoCodeRequest  true  "Promo code details"
// @Success      201  {object}  APIResponse[appcamp.PromoCodeResponse]
// @Failure      409  {object}  ErrorResponse  "Code already exists"
// @Router       /admin/promo-codes [post]
func (h *CatalogHandler) CreatePromoCode(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	var req appcamp.CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.campService.CreatePromoCode(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// ListPromoCodes godoc
// @ID           listPromoCodes
// @Summary      List promo codes for the tenant
// @Tags         promo-codes
// @Produce      json
// @Success      200  {object}  APIResponse[[]appcamp.PromoCodeResponse]
// @Router       /admin/promo-codes [get]
func (h *CatalogHandler) ListPromoCodes(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	var filter appcamp.CampListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	responses, err := h.campService.ListPromoCodes(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, responses)
}

// ValidatePromoCode godoc
// @ID           validatePromoCode
// @Summary      Validate a promo code
// @Description  Checks a code against the tenant scope and active window before checkout
// @Tags         promo-codes
// @Accept       json
// @Produce      json
// @Param        request  body  appcamp.ValidatePromoCodeRequest  true  "Code to validate"
// @Success      200  {object}  APIResponse[appcamp.PromoCodeResponse]
// @Failure      404  {object}  ErrorResponse  "Code not found"
// @Failure      422  {object}  ErrorResponse  "Code not currently active"
// @Router       /admin/promo-codes/validate [post]
func (h *CatalogHandler) ValidatePromoCode(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	var req appcamp.ValidatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.campService.ValidatePromoCode(c.Request.Context(), tenantID, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// DeactivatePromoCode godoc
// @ID           deactivatePromoCode
// @Summary      Permanently disable a promo code
// @Tags         promo-codes
// @Produce      json
// @Param        id  path  string  true  "Promo code ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/promo-codes/{id} [delete]
func (h *CatalogHandler) DeactivatePromoCode(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	promoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promo code ID")
		return
	}

	if err := h.campService.DeactivatePromoCode(c.Request.Context(), tenantID, promoID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
