package dto

import (
	"time"

	"github.com/mkravets/business-management-api/internal/models"
)

// CommentDTO represents a task comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	UserID    uint64    `json:"user_id"`
	TaskID    uint64    `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Text:      comment.Text,
		UserID:    comment.UserID,
		TaskID:    comment.TaskID,
		CreatedAt: comment.CreatedAt,
	}
}

// ToCommentDTOs converts a slice of comments to DTOs
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		dtos[i] = ToCommentDTO(comment)
	}
	return dtos
}
