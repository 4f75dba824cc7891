package postgres

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SharedHelpers holds query helpers used by every PostgreSQL repository.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// GetDB returns tx when the caller runs inside a transaction, else the pool.
func (h *SharedHelpers) GetDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return h.db
}

// ApplyPaginationAndSort applies ORDER BY, LIMIT and OFFSET. Only columns in
// allowed can be sorted on; anything else falls back to defaultSort.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int, allowed map[string]bool, defaultSort string) *gorm.DB {
	if sortBy != "" && allowed[sortBy] {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: sortBy},
			Desc:   !strings.EqualFold(sortOrder, "asc"),
		})
	} else if defaultSort != "" {
		query = query.Order(defaultSort)
	}
	// Stable tie-break so equal sort keys page deterministically
	query = query.Order("id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
