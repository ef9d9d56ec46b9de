package services

import (
	"gorm.io/gorm"

	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
	"github.com/mkravets/business-management-api/internal/utils"
)

var ErrCommentNotFound = apierrors.NotFoundError("The comment was not found")

// CommentService manages the comments attached to tasks. Every
// operation verifies the task through the same ownership check tasks
// use.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

// Create attaches a comment to the task.
func (s *CommentService) Create(text string, userID, taskID, teamID uint64) (*models.Comment, error) {
	if _, err := taskInTeam(s.taskRepo, taskID, teamID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   text,
		UserID: userID,
		TaskID: taskID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apierrors.StorageError("Something went wrong when creating the comment", err)
	}

	return comment, nil
}

// ListByTask lists the task's comments ordered by creation time.
func (s *CommentService) ListByTask(taskID, teamID uint64, params utils.PaginationParams) ([]models.Comment, error) {
	if _, err := taskInTeam(s.taskRepo, taskID, teamID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(taskID, params)
	if err != nil {
		return nil, apierrors.StorageError("Something went wrong when loading the comments", err)
	}
	return comments, nil
}

// Delete removes a comment. A comment that does not exist, or that
// hangs off a different task, is reported as not found rather than
// silently ignored. Authorship is not checked, any team member may
// delete any comment.
func (s *CommentService) Delete(commentID, taskID, teamID uint64) error {
	if _, err := taskInTeam(s.taskRepo, taskID, teamID); err != nil {
		return err
	}

	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if apierrors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return apierrors.StorageError("Something went wrong when loading the comment", err)
	}
	if comment.TaskID != taskID {
		return ErrCommentNotFound
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return apierrors.StorageError("Something went wrong when deleting the comment", err)
	}
	return nil
}
