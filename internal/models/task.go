package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "OPEN"
	TaskStatusWork      TaskStatus = "WORK"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusWork, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Deadline    time.Time      `gorm:"type:date;not null" json:"deadline"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	PerformerID *uint64        `gorm:"index" json:"performer_id"`
	TeamID      uint64         `gorm:"not null;index" json:"team_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Performer  *User       `gorm:"foreignKey:PerformerID" json:"performer,omitempty"`
	Team       Team        `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Comments   []Comment   `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Evaluation *Evaluation `gorm:"foreignKey:TaskID" json:"evaluation,omitempty"`
}
