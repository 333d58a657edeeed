package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"slug":       true,
	"status":     true,
	"is_default": true,
}

// CampSortFields contains allowed sort fields for camps
var CampSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"slug":                true,
	"name":                true,
	"start_date":          true,
	"end_date":            true,
	"capacity":            true,
	"base_price":          true,
	"early_bird_deadline": true,
	"status":              true,
}

// ProfileSortFields contains allowed sort fields for profiles
var ProfileSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"email":      true,
	"first_name": true,
	"last_name":  true,
	"city":       true,
	"state":      true,
}

// PromoCodeSortFields contains allowed sort fields for promo codes
var PromoCodeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"type":       true,
	"applies_to": true,
	"starts_at":  true,
	"ends_at":    true,
	"is_active":  true,
}

// RegistrationSortFields contains allowed sort fields for registrations
var RegistrationSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"camp_id":             true,
	"profile_id":          true,
	"athlete_id":          true,
	"camper_index":        true,
	"status":              true,
	"total":               true,
	"confirmation_number": true,
}
