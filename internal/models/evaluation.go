package models

import "time"

// Evaluation is the single 1-5 score a manager gives a task. The
// unique index on TaskID backs the one-evaluation-per-task upsert, so
// evaluations hard-delete (no DeletedAt) to keep the index honest.
type Evaluation struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Value       int       `gorm:"not null;check:value >= 1 AND value <= 5" json:"value"`
	EvaluatorID uint64    `gorm:"not null" json:"evaluator_id"`
	TaskID      uint64    `gorm:"uniqueIndex;not null" json:"task_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Evaluator User `gorm:"foreignKey:EvaluatorID" json:"evaluator,omitempty"`
	Task      Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
