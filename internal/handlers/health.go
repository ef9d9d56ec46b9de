package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/business-management-api/internal/database"
	apierrors "github.com/mkravets/business-management-api/internal/errors"
)

// HealthHandler reports whether the API and its backing stores are up.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check pings the database and the token revocation list.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := database.GetDB().DB()
	if err != nil {
		apierrors.ServiceUnavailable(c, "Database unavailable")
		return
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		apierrors.ServiceUnavailable(c, "Database unavailable")
		return
	}

	rdb := database.GetRedis()
	if rdb == nil || rdb.Ping(ctx).Err() != nil {
		apierrors.ServiceUnavailable(c, "Revocation list unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
