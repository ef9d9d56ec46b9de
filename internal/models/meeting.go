package models

import "time"

// Meeting occupies an exclusive (team, date, time) slot, enforced by
// the composite unique index. Meetings hard-delete so a freed slot is
// immediately reusable.
type Meeting struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_meetings_team_slot" json:"date"`
	StartTime string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_meetings_team_slot" json:"time"`
	TeamID    uint64    `gorm:"not null;uniqueIndex:idx_meetings_team_slot" json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Team         Team                 `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Participants []MeetingParticipant `gorm:"foreignKey:MeetingID" json:"participants,omitempty"`
}
