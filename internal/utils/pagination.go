package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginationParams holds the pagination parameters. Zero values are
// sentinels: limit 0 returns everything, offset 0 skips nothing.
type PaginationParams struct {
	Limit  int
	Offset int
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	return PaginationParams{
		Limit:  limit,
		Offset: offset,
	}
}
