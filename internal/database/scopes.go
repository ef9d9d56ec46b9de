package database

import (
	"gorm.io/gorm"

	"github.com/mkravets/business-management-api/internal/utils"
)

// Paginate applies limit/offset to a GORM query. Zero means no limit
// and no skip respectively.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Offset > 0 {
			db = db.Offset(params.Offset)
		}
		if params.Limit > 0 {
			db = db.Limit(params.Limit)
		}
		return db
	}
}
