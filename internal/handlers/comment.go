package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/business-management-api/internal/dto"
	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/middleware"
	"github.com/mkravets/business-management-api/internal/services"
	"github.com/mkravets/business-management-api/internal/utils"
)

// CommentHandler coordinates task comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment attaches a comment to the task.
func (h *CommentHandler) CreateComment(c *gin.Context) {
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

	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type CreateCommentRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(req.Text, userID, taskID, teamID)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// GetTaskComments lists the task's comments oldest first.
func (h *CommentHandler) GetTaskComments(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	params := utils.GetPaginationParams(c)
	comments, err := h.commentService.ListByTask(taskID, teamID, params)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

// DeleteComment removes a comment from the task.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.commentService.Delete(commentID, taskID, teamID); err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
