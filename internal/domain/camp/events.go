package camp

import (
	"time"

	"github.com/camphq/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCamp = "Camp"

// Event type constants
const (
	EventTypeCampCreated = "CampCreated"
	EventTypeCampUpdated = "CampUpdated"
)

// CampCreatedEvent is published when a new camp is created
type CampCreatedEvent struct {
	shared.BaseDomainEvent
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Capacity  int       `json:"capacity"`
}

// NewCampCreatedEvent creates a new CampCreatedEvent
func NewCampCreatedEvent(c *Camp) *CampCreatedEvent {
	return &CampCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampCreated, AggregateTypeCamp, c.ID, c.TenantID),
		Slug:            c.Slug,
		Name:            c.Name,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		Capacity:        c.Capacity,
	}
}

// CampUpdatedEvent is published when a camp is updated
type CampUpdatedEvent struct {
	shared.BaseDomainEvent
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// NewCampUpdatedEvent creates a new CampUpdatedEvent
func NewCampUpdatedEvent(c *Camp) *CampUpdatedEvent {
	return &CampUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampUpdated, AggregateTypeCamp, c.ID, c.TenantID),
		Slug:            c.Slug,
		Name:            c.Name,
		Capacity:        c.Capacity,
	}
}
