package dto

import (
	"time"

	"github.com/mkravets/business-management-api/internal/constants"
	"github.com/mkravets/business-management-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Description string            `json:"description"`
	Deadline    string            `json:"deadline"`
	Status      models.TaskStatus `json:"status"`
	PerformerID *uint64           `json:"performer_id"`
	TeamID      uint64            `json:"team_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Performer   *UserDTO          `json:"performer,omitempty"`
	Evaluation  *EvaluationDTO    `json:"evaluation,omitempty"`
}

// EvaluationDTO represents a task evaluation in API responses
type EvaluationDTO struct {
	ID          uint64    `json:"id"`
	Value       int       `json:"value"`
	EvaluatorID uint64    `json:"evaluator_id"`
	TaskID      uint64    `json:"task_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Description: task.Description,
		Deadline:    task.Deadline.Format(constants.DateLayout),
		Status:      task.Status,
		PerformerID: task.PerformerID,
		TeamID:      task.TeamID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include performer if preloaded
	if task.Performer != nil && task.Performer.ID != 0 {
		performer := ToUserDTO(*task.Performer)
		dto.Performer = &performer
	}

	// Include evaluation if preloaded
	if task.Evaluation != nil && task.Evaluation.ID != 0 {
		evaluation := ToEvaluationDTO(*task.Evaluation)
		dto.Evaluation = &evaluation
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks to DTOs
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToEvaluationDTO converts an Evaluation model to EvaluationDTO
func ToEvaluationDTO(evaluation models.Evaluation) EvaluationDTO {
	return EvaluationDTO{
		ID:          evaluation.ID,
		Value:       evaluation.Value,
		EvaluatorID: evaluation.EvaluatorID,
		TaskID:      evaluation.TaskID,
		CreatedAt:   evaluation.CreatedAt,
		UpdatedAt:   evaluation.UpdatedAt,
	}
}
