package repository

import (
	"github.com/mkravets/business-management-api/internal/database"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask lists a task's comments oldest first
func (r *GormCommentRepository) ListByTask(taskID uint64, params utils.PaginationParams) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Scopes(database.Paginate(params)).
		Where("task_id = ?", taskID).
		Order("comments.created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete deletes a comment
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
