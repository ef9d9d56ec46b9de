package dto

import (
	"time"

	"github.com/mkravets/business-management-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamWithRoleDTO represents a team together with the caller's role
type TeamWithRoleDTO struct {
	TeamDTO
	Role models.TeamRole `json:"role"`
}

// TeamMemberDTO represents a member of a team
type TeamMemberDTO struct {
	UserID   uint64          `json:"user_id"`
	Username string          `json:"username"`
	Role     models.TeamRole `json:"role"`
	JoinedAt time.Time       `json:"joined_at"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:        team.ID,
		Name:      team.Name,
		CreatedAt: team.CreatedAt,
	}
}

// ToTeamWithRoleDTO converts a membership to a team DTO with the role
func ToTeamWithRoleDTO(member models.TeamMember) TeamWithRoleDTO {
	return TeamWithRoleDTO{
		TeamDTO: ToTeamDTO(member.Team),
		Role:    member.Role,
	}
}

// ToTeamWithRoleDTOs converts a slice of memberships to team DTOs
func ToTeamWithRoleDTOs(members []models.TeamMember) []TeamWithRoleDTO {
	dtos := make([]TeamWithRoleDTO, len(members))
	for i, member := range members {
		dtos[i] = ToTeamWithRoleDTO(member)
	}
	return dtos
}

// ToTeamMemberDTO converts a membership to a member DTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		UserID:   member.UserID,
		Username: member.User.Username,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToTeamMemberDTOs converts a slice of memberships to member DTOs
func ToTeamMemberDTOs(members []models.TeamMember) []TeamMemberDTO {
	dtos := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToTeamMemberDTO(member)
	}
	return dtos
}
