package handler

import (
	"time"

	"github.com/camphq/backend/internal/domain/party"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartyHandler exposes the authorized-pickup roster to staff. Pickups are
// created through checkout; staff can review and revoke them here.
type PartyHandler struct {
	BaseHandler
	pickups party.AuthorizedPickupRepository
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(pickups party.AuthorizedPickupRepository) *PartyHandler {
	return &PartyHandler{pickups: pickups}
}

// PickupResponse is the API shape of an authorized pickup
type PickupResponse struct {
	ID           uuid.UUID `json:"id"`
	AthleteID    uuid.UUID `json:"athlete_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Relationship string    `json:"relationship,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func pickupToResponse(p *party.AuthorizedPickup) PickupResponse {
	return PickupResponse{
		ID:           p.ID,
		AthleteID:    p.AthleteID,
		Name:         p.Name,
		Phone:        p.Phone,
		Relationship: p.Relationship,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

// ListAthletePickups godoc
// @ID           listAthletePickups
// @Summary      List active authorized pickups for an athlete
// @Tags         pickups
// @Produce      json
// @Param        id  path  string  true  "Athlete ID"
// @Success      200  {object}  APIResponse[[]PickupResponse]
// @Router       /athletes/{id}/pickups [get]
func (h *PartyHandler) ListAthletePickups(c *gin.Context) {
	athleteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid athlete ID")
		return
	}

	pickups, err := h.pickups.FindActiveByAthlete(c.Request.Context(), athleteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]PickupResponse, len(pickups))
	for i := range pickups {
		responses[i] = pickupToResponse(&pickups[i])
	}
	h.Success(c, responses)
}

// DeactivatePickup godoc
// @ID           deactivatePickup
// @Summary      Revoke a pickup authorization
// @Description  Soft-deletes the pickup so it no longer appears on the roster
// @Tags         pickups
// @Produce      json
// @Param        id  path  string  true  "Pickup ID"
// @Success      200  {object}  APIResponse[PickupResponse]
// @Failure      404  {object}  ErrorResponse
// @Router       /pickups/{id} [delete]
func (h *PartyHandler) DeactivatePickup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pickup ID")
		return
	}

	pickup, err := h.pickups.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pickup.Deactivate()
	if err := h.pickups.Save(c.Request.Context(), pickup); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pickupToResponse(pickup))
}
