package services

import (
	"time"

	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
	"github.com/mkravets/business-management-api/internal/utils"
)

var ErrDeadlineInPast = apierrors.ValidationError("Deadline cannot be in the past")

// TaskService manages team tasks and their evaluations.
type TaskService struct {
	taskRepo repository.TaskRepository
	teamRepo repository.TeamRepository
	evalRepo repository.EvaluationRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, teamRepo repository.TeamRepository, evalRepo repository.EvaluationRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		teamRepo: teamRepo,
		evalRepo: evalRepo,
	}
}

// CreateTaskInput represents the required information to create a task.
type CreateTaskInput struct {
	Description string
	Deadline    time.Time
	Status      models.TaskStatus
	PerformerID *uint64
}

// UpdateTaskInput carries the optional task fields. Nil fields are
// left unchanged.
type UpdateTaskInput struct {
	Description *string
	Deadline    *time.Time
	Status      *models.TaskStatus
	PerformerID *uint64
}

// checkDeadline rejects deadlines before today. Deadlines are dates,
// so the comparison runs against UTC midnight, not the current instant.
func checkDeadline(deadline time.Time) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if deadline.Before(today) {
		return ErrDeadlineInPast
	}
	return nil
}

// Create creates a task in the team. A supplied performer must already
// be a member; the status defaults to OPEN.
func (s *TaskService) Create(teamID uint64, input CreateTaskInput) (*models.Task, error) {
	if err := checkDeadline(input.Deadline); err != nil {
		return nil, err
	}

	if input.PerformerID != nil {
		if _, err := userInTeam(s.teamRepo, teamID, *input.PerformerID); err != nil {
			return nil, err
		}
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusOpen
	}

	task := &models.Task{
		Description: input.Description,
		Deadline:    input.Deadline,
		Status:      status,
		PerformerID: input.PerformerID,
		TeamID:      teamID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, apierrors.StorageError("Something went wrong when creating the task", err)
	}

	return task, nil
}

// ListByTeam lists the team's tasks.
func (s *TaskService) ListByTeam(teamID uint64, params utils.PaginationParams) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByTeam(teamID, params)
	if err != nil {
		return nil, apierrors.StorageError("Something went wrong when loading the tasks", err)
	}
	return tasks, nil
}

// ListForPerformer lists the team tasks assigned to the user.
func (s *TaskService) ListForPerformer(teamID, performerID uint64, params utils.PaginationParams) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByPerformer(teamID, performerID, params)
	if err != nil {
		return nil, apierrors.StorageError("Something went wrong when loading the tasks", err)
	}
	return tasks, nil
}

// Update applies a partial task update after verifying the task
// belongs to the team. A new deadline is validated before the task is
// even looked up, a new performer has to be a member.
func (s *TaskService) Update(taskID, teamID uint64, input UpdateTaskInput) (*models.Task, error) {
	if input.Deadline != nil {
		if err := checkDeadline(*input.Deadline); err != nil {
			return nil, err
		}
	}

	task, err := taskInTeam(s.taskRepo, taskID, teamID)
	if err != nil {
		return nil, err
	}

	if input.PerformerID != nil {
		if _, err := userInTeam(s.teamRepo, teamID, *input.PerformerID); err != nil {
			return nil, err
		}
		task.PerformerID = input.PerformerID
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Deadline != nil {
		task.Deadline = *input.Deadline
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, apierrors.StorageError("Something went wrong when updating the task", err)
	}

	return task, nil
}

// Delete removes the task with its comments and evaluation after the
// ownership check.
func (s *TaskService) Delete(taskID, teamID uint64) error {
	if _, err := taskInTeam(s.taskRepo, taskID, teamID); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(taskID); err != nil {
		return apierrors.StorageError("Something went wrong when deleting the task", err)
	}
	return nil
}

// Evaluate records the task's score. Each task holds a single
// evaluation, so a resubmission overwrites the value and the evaluator.
func (s *TaskService) Evaluate(taskID, teamID, evaluatorID uint64, value int) (*models.Evaluation, error) {
	if _, err := taskInTeam(s.taskRepo, taskID, teamID); err != nil {
		return nil, err
	}

	evaluation := &models.Evaluation{
		Value:       value,
		EvaluatorID: evaluatorID,
		TaskID:      taskID,
	}
	if err := s.evalRepo.Upsert(evaluation); err != nil {
		return nil, apierrors.StorageError("Something went wrong when updating the task evaluation", err)
	}

	// Re-read so the caller sees the stored row whichever upsert
	// branch ran.
	stored, err := s.evalRepo.FindByTaskID(taskID)
	if err != nil {
		return nil, apierrors.StorageError("Something went wrong when loading the evaluation", err)
	}
	return stored, nil
}
