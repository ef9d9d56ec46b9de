package repository

import (
	"time"

	"github.com/mkravets/business-management-api/internal/database"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormMeetingRepository is a GORM implementation of MeetingRepository
type GormMeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &GormMeetingRepository{db: db}
}

// Create creates the meeting and its participants atomically
func (r *GormMeetingRepository) Create(meeting *models.Meeting, participantIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return err
		}
		return createParticipants(tx, meeting.ID, participantIDs)
	})
}

// FindByID finds a meeting by ID with optional preloading
func (r *GormMeetingRepository) FindByID(id uint64, preload ...string) (*models.Meeting, error) {
	var meeting models.Meeting
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&meeting, id).Error; err != nil {
		return nil, err
	}

	return &meeting, nil
}

// FindBySlot finds the meeting occupying a (team, date, time) slot
func (r *GormMeetingRepository) FindBySlot(teamID uint64, date time.Time, startTime string) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := r.db.Where("team_id = ? AND date = ? AND start_time = ?", teamID, date, startTime).
		First(&meeting).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

// ListByTeam lists a team's meetings with participants
func (r *GormMeetingRepository) ListByTeam(teamID uint64, params utils.PaginationParams) ([]models.Meeting, error) {
	var meetings []models.Meeting
	if err := r.db.Scopes(database.Paginate(params)).
		Preload("Participants.User").
		Where("team_id = ?", teamID).
		Order("meetings.id ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// ListByParticipant lists the team meetings a user participates in
func (r *GormMeetingRepository) ListByParticipant(teamID, userID uint64, params utils.PaginationParams) ([]models.Meeting, error) {
	var meetings []models.Meeting
	if err := r.db.Scopes(database.Paginate(params)).
		Preload("Participants.User").
		Joins("JOIN meeting_participants ON meeting_participants.meeting_id = meetings.id").
		Where("meetings.team_id = ? AND meeting_participants.user_id = ?", teamID, userID).
		Order("meetings.id ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// Update saves the meeting and, when participantIDs is non-nil,
// replaces the whole participant set in the same transaction
func (r *GormMeetingRepository) Update(meeting *models.Meeting, participantIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(meeting).Error; err != nil {
			return err
		}

		if participantIDs == nil {
			return nil
		}

		if err := tx.Where("meeting_id = ?", meeting.ID).
			Delete(&models.MeetingParticipant{}).Error; err != nil {
			return err
		}
		return createParticipants(tx, meeting.ID, participantIDs)
	})
}

// Delete deletes a meeting and its participants
func (r *GormMeetingRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).
			Delete(&models.MeetingParticipant{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Meeting{}, id).Error
	})
}

func createParticipants(tx *gorm.DB, meetingID uint64, userIDs []uint64) error {
	participants := make([]models.MeetingParticipant, len(userIDs))

	for i, userID := range userIDs {
		participants[i] = models.MeetingParticipant{
			MeetingID: meetingID,
			UserID:    userID,
		}
	}

	return tx.Create(&participants).Error
}
