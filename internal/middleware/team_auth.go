package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/business-management-api/internal/constants"
	"github.com/mkravets/business-management-api/internal/database"
	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
)

// RequireTeamMember checks if the user is a member of the team named
// by the id path parameter
func RequireTeamMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamIDStr := c.Param("id")
		teamID, err := strconv.ParseUint(teamIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid team ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var member models.TeamMember
		err = database.GetDB().Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
		if err != nil {
			apierrors.Forbidden(c, "You are not a member of this team")
			c.Abort()
			return
		}

		// Store team ID and membership in context for the handlers and
		// the role guards below
		c.Set(constants.ContextKeyTeamID, teamID)
		c.Set(constants.ContextKeyMembership, member)
		c.Next()
	}
}

// RequireTeamManager checks if the user holds a manager-level role
// (MANAGER or ADMIN) in the team. Must run after RequireTeamMember.
func RequireTeamManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := getMembership(c)
		if !ok {
			return
		}

		if !member.Role.CanManage() {
			apierrors.Forbidden(c, "Manager or admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireTeamAdmin checks if the user holds the ADMIN role in the
// team. Must run after RequireTeamMember.
func RequireTeamAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := getMembership(c)
		if !ok {
			return
		}

		if member.Role != models.RoleAdmin {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetTeamID retrieves the team ID stored by RequireTeamMember
func GetTeamID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyTeamID)
	if !exists {
		return 0, false
	}

	teamID, ok := value.(uint64)
	if !ok {
		return 0, false
	}
	return teamID, true
}

func getMembership(c *gin.Context) (models.TeamMember, bool) {
	value, exists := c.Get(constants.ContextKeyMembership)
	if !exists {
		apierrors.Forbidden(c, "Team access required")
		c.Abort()
		return models.TeamMember{}, false
	}

	member, ok := value.(models.TeamMember)
	if !ok {
		apierrors.InternalError(c, "Invalid team membership data")
		c.Abort()
		return models.TeamMember{}, false
	}

	return member, true
}
