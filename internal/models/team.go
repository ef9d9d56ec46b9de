package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members  []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Tasks    []Task       `gorm:"foreignKey:TeamID" json:"tasks,omitempty"`
	Meetings []Meeting    `gorm:"foreignKey:TeamID" json:"meetings,omitempty"`
}
