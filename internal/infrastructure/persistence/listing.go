package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// catalogSortFields are the columns a catalog listing may be ordered by
var catalogSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"sort_order": true,
	"status":     true,
}

// ValidateSortOrder returns ASC for "asc" in any case and DESC otherwise
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField if allowed and defaultField otherwise.
// Only whitelisted names ever reach ORDER BY.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	if trimmed := strings.TrimSpace(sortField); allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// applyListConditions applies the search and status filters of a catalog
// listing. Search matches name or code case-insensitively.
func applyListConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(code) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	if status := filter.Filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}

// applyListPage orders by sort_order unless the filter names another
// column. Name breaks ties so pages are stable.
func applyListPage(query *gorm.DB, filter shared.Filter) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, catalogSortFields, "sort_order")
	dir := "ASC"
	if filter.OrderBy != "" {
		dir = ValidateSortOrder(filter.OrderDir)
	}
	query = query.Order(field + " " + dir)
	if field != "name" {
		query = query.Order("name ASC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
