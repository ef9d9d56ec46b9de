package repository

import (
	"database/sql"
	"time"

	"github.com/mkravets/business-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEvaluationRepository is a GORM implementation of EvaluationRepository
type GormEvaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository creates a new EvaluationRepository
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &GormEvaluationRepository{db: db}
}

// Upsert inserts the evaluation or overwrites value and evaluator in
// place. The unique index on task_id keeps one row per task.
func (r *GormEvaluationRepository) Upsert(evaluation *models.Evaluation) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "task_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":        evaluation.Value,
				"evaluator_id": evaluation.EvaluatorID,
			}),
		}).
		Create(evaluation).Error
}

// FindByTaskID finds the evaluation of a task
func (r *GormEvaluationRepository) FindByTaskID(taskID uint64) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.Where("task_id = ?", taskID).First(&evaluation).Error; err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// AverageForPerformer computes AVG(value) over evaluations of the
// user's tasks in the team. The window is half-open: from inclusive,
// to exclusive. NULL (no matching rows) scans as invalid and comes
// back as plain zero.
func (r *GormEvaluationRepository) AverageForPerformer(userID, teamID uint64, from, to *time.Time) (float64, error) {
	query := r.db.Model(&models.Evaluation{}).
		Select("AVG(evaluations.value)").
		Joins("JOIN tasks ON tasks.id = evaluations.task_id AND tasks.deleted_at IS NULL").
		Where("tasks.performer_id = ? AND tasks.team_id = ?", userID, teamID)

	if from != nil {
		query = query.Where("evaluations.created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("evaluations.created_at < ?", *to)
	}

	var avg sql.NullFloat64
	if err := query.Scan(&avg).Error; err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
