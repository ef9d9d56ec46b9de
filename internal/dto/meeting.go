package dto

import (
	"time"

	"github.com/mkravets/business-management-api/internal/constants"
	"github.com/mkravets/business-management-api/internal/models"
)

// MeetingDTO represents a meeting in API responses
type MeetingDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	StartTime string    `json:"time"`
	TeamID    uint64    `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	Users     []UserDTO `json:"users"`
}

// ToMeetingDTO converts a Meeting model to MeetingDTO
func ToMeetingDTO(meeting models.Meeting) MeetingDTO {
	users := make([]UserDTO, 0, len(meeting.Participants))
	for _, participant := range meeting.Participants {
		if participant.User.ID != 0 {
			users = append(users, ToUserDTO(participant.User))
		}
	}

	return MeetingDTO{
		ID:        meeting.ID,
		Name:      meeting.Name,
		Date:      meeting.Date.Format(constants.DateLayout),
		StartTime: meeting.StartTime,
		TeamID:    meeting.TeamID,
		CreatedAt: meeting.CreatedAt,
		Users:     users,
	}
}

// ToMeetingDTOs converts a slice of meetings to DTOs
func ToMeetingDTOs(meetings []models.Meeting) []MeetingDTO {
	dtos := make([]MeetingDTO, len(meetings))
	for i, meeting := range meetings {
		dtos[i] = ToMeetingDTO(meeting)
	}
	return dtos
}
