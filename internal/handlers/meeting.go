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
	"github.com/mkravets/business-management-api/internal/services"
	"github.com/mkravets/business-management-api/internal/utils"
)

// MeetingHandler coordinates meeting HTTP handlers.
type MeetingHandler struct {
	meetingService *services.MeetingService
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(meetingService *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
	}
}

// CreateMeeting creates a meeting on a free slot with at least one
// participant.
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	type CreateMeetingRequest struct {
		Name           string   `json:"name" binding:"required,max=100"`
		Date           string   `json:"date" binding:"required,datetime=2006-01-02"`
		StartTime      string   `json:"time" binding:"required,datetime=15:04"`
		ParticipantIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse(constants.DateLayout, req.Date)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date")
		return
	}

	meeting, err := h.meetingService.Create(teamID, services.CreateMeetingInput{
		Name:           req.Name,
		Date:           date,
		StartTime:      req.StartTime,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMeetingDTO(*meeting))
}

// GetTeamMeetings lists the team's meetings.
func (h *MeetingHandler) GetTeamMeetings(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	params := utils.GetPaginationParams(c)
	meetings, err := h.meetingService.ListByTeam(teamID, params)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTOs(meetings))
}

// GetMyMeetings lists the team meetings the caller participates in.
func (h *MeetingHandler) GetMyMeetings(c *gin.Context) {
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

	params := utils.GetPaginationParams(c)
	meetings, err := h.meetingService.ListForMember(teamID, userID, params)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTOs(meetings))
}

// UpdateMeeting applies a partial update to a meeting.
func (h *MeetingHandler) UpdateMeeting(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	meetingID, err := strconv.ParseUint(c.Param("meeting_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	type UpdateMeetingRequest struct {
		Name           *string   `json:"name" binding:"omitempty,max=100"`
		Date           *string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
		StartTime      *string   `json:"time" binding:"omitempty,datetime=15:04"`
		ParticipantIDs *[]uint64 `json:"user_ids"`
	}

	var req UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateMeetingInput{
		Name:           req.Name,
		StartTime:      req.StartTime,
		ParticipantIDs: req.ParticipantIDs,
	}
	if req.Date != nil {
		date, err := time.Parse(constants.DateLayout, *req.Date)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date")
			return
		}
		input.Date = &date
	}

	meeting, err := h.meetingService.Update(meetingID, teamID, input)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTO(*meeting))
}

// DeleteMeeting removes a meeting and frees its slot.
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	meetingID, err := strconv.ParseUint(c.Param("meeting_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	if err := h.meetingService.Delete(meetingID, teamID); err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
