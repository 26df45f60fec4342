package postgres

import "gorm.io/gorm"

var sortableColumns = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"title":           true,
	"times_attempted": true,
	"average_score":   true,
}

// applyPaginationAndSort appends ORDER BY, LIMIT and OFFSET. Unknown sort
// columns fall back to created_at to keep user input out of the SQL.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
