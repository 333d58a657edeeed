package handler

import (
	appcamp "github.com/camphq/backend/internal/application/camp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CampHandler handles public camp discovery and camp management endpoints
type CampHandler struct {
	BaseHandler
	campService *appcamp.CampService
}

// NewCampHandler creates a new CampHandler
func NewCampHandler(campService *appcamp.CampService) *CampHandler {
	return &CampHandler{campService: campService}
}

// ListPublishedCamps godoc
// @ID           listPublishedCamps
// @Summary      List camps open for registration
// @Tags         camps
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Param        search     query  string  false  "Search by name, slug, or location"
// @Success      200  {object}  APIResponse[[]appcamp.CampResponse]
// @Router       /camps [get]
func (h *CampHandler) ListPublishedCamps(c *gin.Context) {
	var filter appcamp.CampListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	responses, err := h.campService.ListPublished(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, responses)
}

// GetCampBySlug godoc
// @ID           getCampBySlug
// @Summary      Get a camp by slug
// @Description  Public camp detail lookup, the storefront's camp page
// @Tags         camps
// @Produce      json
// @Param        slug  path  string  true  "Camp slug"
// @Success      200  {object}  APIResponse[appcamp.CampResponse]
// @Failure      404  {object}  ErrorResponse
// @Router       /camps/{slug} [get]
func (h *CampHandler) GetCampBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Missing camp slug")
		return
	}

	response, err := h.campService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// CreateCamp godoc
// @ID           createCamp
// @Summary      Create a camp
// @Tags         camps
// @Accept       json
// @Produce      json
// @Param        request  body  appcamp.CreateCampRequest  true  "Camp details"
// @Success      201  {object}  APIResponse[appcamp.CampResponse]
// @Failure      409  {object}  ErrorResponse  "Slug already exists"
// @Router       /admin/camps [post]
func (h *CampHandler) CreateCamp(c *gin.Context) {
	var req appcamp.CreateCampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.campService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// ListTenantCamps godoc
// @ID           listTenantCamps
// @Summary      List all camps for the tenant
// @Tags         camps
// @Produce      json
// @Success      200  {object}  APIResponse[[]appcamp.CampResponse]
// @Router       /admin/camps [get]
func (h *CampHandler) ListTenantCamps(c *gin.Context) {
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

	responses, err := h.campService.ListForTenant(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, responses)
}

// UpdateCamp godoc
// @ID           updateCamp
// @Summary      Update a camp
// @Tags         camps
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Camp ID"
// @Param        request  body  appcamp.UpdateCampRequest  true  "Camp details"
// @Success      200  {object}  APIResponse[appcamp.CampResponse]
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/camps/{id} [put]
func (h *CampHandler) UpdateCamp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid camp ID")
		return
	}

	var req appcamp.UpdateCampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.campService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// PublishCamp godoc
// @ID           publishCamp
// @Summary      Open a camp for registration
// @Tags         camps
// @Produce      json
// @Param        id  path  string  true  "Camp ID"
// @Success      200  {object}  APIResponse[appcamp.CampResponse]
// @Failure      422  {object}  ErrorResponse  "Camp not publishable"
// @Router       /admin/camps/{id}/publish [post]
func (h *CampHandler) PublishCamp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid camp ID")
		return
	}

	response, err := h.campService.Publish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// ArchiveCamp godoc
// @ID           archiveCamp
// @Summary      Archive a camp
// @Tags         camps
// @Produce      json
// @Param        id  path  string  true  "Camp ID"
// @Success      200  {object}  APIResponse[appcamp.CampResponse]
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/camps/{id}/archive [post]
func (h *CampHandler) ArchiveCamp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid camp ID")
		return
	}

	response, err := h.campService.Archive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}
