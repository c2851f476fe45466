package persistence

import "gorm.io/gorm"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// applyPagination applies sane page/size bounds to a query. Page numbers are
// 1-based; a size outside (0, maxPageSize] falls back to the default.
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
