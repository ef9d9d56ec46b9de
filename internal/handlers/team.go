package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/business-management-api/internal/constants"
	"github.com/mkravets/business-management-api/internal/dto"
	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/middleware"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/services"
)

// TeamHandler coordinates team and membership HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a team with the caller as its admin.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTeamRequest struct {
		Name string `json:"name" binding:"required,max=100"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(req.Name, userID)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// GetMyTeams lists the caller's teams with their role in each.
func (h *TeamHandler) GetMyTeams(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	members, err := h.teamService.GetTeamsForUser(userID)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamWithRoleDTOs(members))
}

// GetMembers lists the team roster.
func (h *TeamHandler) GetMembers(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	members, err := h.teamService.GetMembers(teamID)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberDTOs(members))
}

// GetAverageScore returns the caller's average evaluation score in the
// team, optionally windowed by start_date and end_date (inclusive).
func (h *TeamHandler) GetAverageScore(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var from *time.Time
	if s := c.Query("start_date"); s != "" {
		parsed, err := time.Parse(constants.DateLayout, s)
		if err != nil {
			apierrors.BadRequest(c, "Invalid start_date")
			return
		}
		from = &parsed
	}

	var to *time.Time
	if s := c.Query("end_date"); s != "" {
		parsed, err := time.Parse(constants.DateLayout, s)
		if err != nil {
			apierrors.BadRequest(c, "Invalid end_date")
			return
		}
		// The repository window is half-open, so an inclusive end date
		// means the following midnight.
		end := parsed.AddDate(0, 0, 1)
		to = &end
	}

	avg, err := h.teamService.AverageScore(userID, teamID, from, to)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"average_score": avg,
	})
}

// AssignRole adds a user to the team or updates their role.
func (h *TeamHandler) AssignRole(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	type AssignRoleRequest struct {
		UserID uint64          `json:"user_id" binding:"required"`
		Role   models.TeamRole `json:"role" binding:"required,teamrole"`
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.teamService.AssignRole(teamID, req.UserID, req.Role)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberDTO(*member))
}

// RemoveMember removes a user from the team. Removing the last member
// deletes the team.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.teamService.RemoveMember(teamID, userID); err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
