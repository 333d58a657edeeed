package persistence

import (
	"github.com/camphq/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPagination applies offset/limit pagination from a filter, falling back
// to a page size of 20 when the filter carries none.
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}
	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}
	return query.Offset(offset).Limit(limit)
}
