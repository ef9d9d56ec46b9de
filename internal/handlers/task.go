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
	"github.com/mkravets/business-management-api/internal/utils"
)

// TaskHandler coordinates task and evaluation HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task in the team.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	type CreateTaskRequest struct {
		Description string  `json:"description" binding:"required"`
		Deadline    string  `json:"deadline" binding:"required,datetime=2006-01-02"`
		Status      string  `json:"status" binding:"omitempty,oneof=OPEN WORK COMPLETED"`
		PerformerID *uint64 `json:"performer_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	deadline, err := time.Parse(constants.DateLayout, req.Deadline)
	if err != nil {
		apierrors.BadRequest(c, "Invalid deadline")
		return
	}

	task, err := h.taskService.Create(teamID, services.CreateTaskInput{
		Description: req.Description,
		Deadline:    deadline,
		Status:      models.TaskStatus(req.Status),
		PerformerID: req.PerformerID,
	})
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTeamTasks lists the team's tasks.
func (h *TaskHandler) GetTeamTasks(c *gin.Context) {
	teamID, ok := middleware.GetTeamID(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, err := h.taskService.ListByTeam(teamID, params)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetMyTasks lists the team tasks assigned to the caller.
func (h *TaskHandler) GetMyTasks(c *gin.Context) {
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
	tasks, err := h.taskService.ListForPerformer(teamID, userID, params)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
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

	type UpdateTaskRequest struct {
		Description *string `json:"description"`
		Deadline    *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
		Status      *string `json:"status" binding:"omitempty,oneof=OPEN WORK COMPLETED"`
		PerformerID *uint64 `json:"performer_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Description: req.Description,
		PerformerID: req.PerformerID,
	}
	if req.Deadline != nil {
		deadline, err := time.Parse(constants.DateLayout, *req.Deadline)
		if err != nil {
			apierrors.BadRequest(c, "Invalid deadline")
			return
		}
		input.Deadline = &deadline
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.taskService.Update(taskID, teamID, input)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// EvaluateTask records the task's 1-5 score, overwriting any previous
// one.
func (h *TaskHandler) EvaluateTask(c *gin.Context) {
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

	type EvaluateTaskRequest struct {
		Value int `json:"value" binding:"required,min=1,max=5"`
	}

	var req EvaluateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	evaluation, err := h.taskService.Evaluate(taskID, teamID, userID, req.Value)
	if err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEvaluationDTO(*evaluation))
}

// DeleteTask removes a task with its comments and evaluation.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
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

	if err := h.taskService.Delete(taskID, teamID); err != nil {
		apierrors.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
