package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkravets/business-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateTeam is returned when creating a team fails inside the create transaction.
	ErrCreateTeam = errors.New("team repository: create team failed")
	// ErrCreateMembership is returned when creating the creator membership fails inside the create transaction.
	ErrCreateMembership = errors.New("team repository: create membership failed")
)

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithAdmin creates the team and the creator's ADMIN membership atomically.
func (r *GormTeamRepository) CreateWithAdmin(team *models.Team, creatorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTeam, err)
		}

		member := &models.TeamMember{
			TeamID:   team.ID,
			UserID:   creatorID,
			Role:     models.RoleAdmin,
			JoinedAt: time.Now(),
		}

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateMembership, err)
		}

		return nil
	})
}

// UpsertMember inserts the membership or updates its role in place.
// The composite primary key keeps exactly one row per (team, user).
func (r *GormTeamRepository) UpsertMember(member *models.TeamMember) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"role": member.Role}),
		}).
		Create(member).Error
}

// RemoveMember removes the membership and, when it was the team's
// last, the team with all its data. Both happen in one transaction.
// Returns gorm.ErrRecordNotFound when the membership does not exist.
func (r *GormTeamRepository) RemoveMember(teamID, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("team_id = ? AND user_id = ?", teamID, userID).
			Delete(&models.TeamMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var remaining int64
		if err := tx.Model(&models.TeamMember{}).Where("team_id = ?", teamID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		return deleteTeamCascade(tx, teamID)
	})
}

// FindMember finds a specific team membership
func (r *GormTeamRepository) FindMember(teamID, userID uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a team
func (r *GormTeamRepository) ListMembers(teamID uint64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Preload("User").
		Where("team_id = ?", teamID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembersByUserID lists all teams a user is a member of
func (r *GormTeamRepository) ListMembersByUserID(userID uint64) ([]models.TeamMember, error) {
	var memberships []models.TeamMember
	if err := r.db.Preload("Team").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// deleteTeamCascade removes a team and all data scoped to it: tasks
// with their comments and evaluations, meetings with their
// participants, and the remaining memberships.
func deleteTeamCascade(tx *gorm.DB, teamID uint64) error {
	if err := tx.Where("task_id IN (?)",
		tx.Model(&models.Task{}).Select("id").Where("team_id = ?", teamID)).
		Delete(&models.Comment{}).Error; err != nil {
		return err
	}

	if err := tx.Where("task_id IN (?)",
		tx.Model(&models.Task{}).Select("id").Where("team_id = ?", teamID)).
		Delete(&models.Evaluation{}).Error; err != nil {
		return err
	}

	if err := tx.Where("team_id = ?", teamID).Delete(&models.Task{}).Error; err != nil {
		return err
	}

	if err := tx.Where("meeting_id IN (?)",
		tx.Model(&models.Meeting{}).Select("id").Where("team_id = ?", teamID)).
		Delete(&models.MeetingParticipant{}).Error; err != nil {
		return err
	}

	if err := tx.Where("team_id = ?", teamID).Delete(&models.Meeting{}).Error; err != nil {
		return err
	}

	if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamMember{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Team{}, teamID).Error
}
