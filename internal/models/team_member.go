package models

import "time"

type TeamRole string

const (
	RoleUser    TeamRole = "USER"
	RoleManager TeamRole = "MANAGER"
	RoleAdmin   TeamRole = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r TeamRole) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// CanManage reports whether the role belongs to the manager-level set
// {MANAGER, ADMIN}. Role checks are set membership, not rank order.
func (r TeamRole) CanManage() bool {
	return r == RoleManager || r == RoleAdmin
}

type TeamMember struct {
	TeamID   uint64    `gorm:"primarykey" json:"team_id"`
	UserID   uint64    `gorm:"primarykey" json:"user_id"`
	Role     TeamRole  `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	JoinedAt time.Time `json:"joined_at"`

	// Relations
	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
