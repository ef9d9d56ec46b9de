package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/mkravets/business-management-api/internal/constants"
	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
	"github.com/mkravets/business-management-api/internal/utils"
)

var (
	ErrEmptyParticipants  = apierrors.ValidationError("Meeting must include at least one member")
	ErrMeetingInPast      = apierrors.ValidationError("Meeting date and time cannot be in the past")
	ErrSlotTaken          = apierrors.ValidationError("A meeting already exists at the given date and time")
	ErrInvalidMeetingTime = apierrors.ValidationError("Invalid meeting time")
)

// MeetingService manages team meetings and their participant sets.
type MeetingService struct {
	meetingRepo repository.MeetingRepository
	teamRepo    repository.TeamRepository
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(meetingRepo repository.MeetingRepository, teamRepo repository.TeamRepository) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		teamRepo:    teamRepo,
	}
}

// CreateMeetingInput represents the required information to create a
// meeting.
type CreateMeetingInput struct {
	Name           string
	Date           time.Time
	StartTime      string
	ParticipantIDs []uint64
}

// UpdateMeetingInput carries the optional meeting fields. Nil fields
// are left unchanged; a non-nil participant list replaces the old set
// wholesale.
type UpdateMeetingInput struct {
	Name           *string
	Date           *time.Time
	StartTime      *string
	ParticipantIDs *[]uint64
}

// meetingInstant combines the date with the HH:MM start time into a
// single UTC instant for the past check.
func meetingInstant(date time.Time, startTime string) (time.Time, error) {
	t, err := time.Parse(constants.TimeLayout, startTime)
	if err != nil {
		return time.Time{}, ErrInvalidMeetingTime
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// Create creates a meeting on a free (team, date, time) slot with a
// non-empty participant set of team members.
func (s *MeetingService) Create(teamID uint64, input CreateMeetingInput) (*models.Meeting, error) {
	if len(input.ParticipantIDs) == 0 {
		return nil, ErrEmptyParticipants
	}

	instant, err := meetingInstant(input.Date, input.StartTime)
	if err != nil {
		return nil, err
	}
	if instant.Before(time.Now().UTC()) {
		return nil, ErrMeetingInPast
	}

	if _, err := s.meetingRepo.FindBySlot(teamID, input.Date, input.StartTime); err == nil {
		return nil, ErrSlotTaken
	} else if !apierrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.StorageError("Something went wrong when checking the meeting slot", err)
	}

	for _, participantID := range input.ParticipantIDs {
		if _, err := userInTeam(s.teamRepo, teamID, participantID); err != nil {
			return nil, err
		}
	}

	meeting := &models.Meeting{
		Name:      input.Name,
		Date:      input.Date,
		StartTime: input.StartTime,
		TeamID:    teamID,
	}
	if err := s.meetingRepo.Create(meeting, input.ParticipantIDs); err != nil {
		return nil, apierrors.StorageError("Something went wrong when creating the meeting", err)
	}

	return s.reload(meeting.ID)
}

// ListByTeam lists the team's meetings with participants preloaded.
func (s *MeetingService) ListByTeam(teamID uint64, params utils.PaginationParams) ([]models.Meeting, error) {
	meetings, err := s.meetingRepo.ListByTeam(teamID, params)
	if err != nil {
		return nil, apierrors.StorageError("Something went wrong when loading the meetings", err)
	}
	return meetings, nil
}

// ListForMember lists the team meetings the user participates in.
func (s *MeetingService) ListForMember(teamID, userID uint64, params utils.PaginationParams) ([]models.Meeting, error) {
	meetings, err := s.meetingRepo.ListByParticipant(teamID, userID, params)
	if err != nil {
		return nil, apierrors.StorageError("Something went wrong when loading the meetings", err)
	}
	return meetings, nil
}

// Update applies a partial meeting update. The effective date and time
// must not land in the past, a changed slot must still be free, and a
// provided participant list must be non-empty team members.
func (s *MeetingService) Update(meetingID, teamID uint64, input UpdateMeetingInput) (*models.Meeting, error) {
	meeting, err := meetingInTeam(s.meetingRepo, meetingID, teamID)
	if err != nil {
		return nil, err
	}

	date := meeting.Date
	dateChanged := false
	if input.Date != nil {
		dateChanged = input.Date.Format(constants.DateLayout) != meeting.Date.Format(constants.DateLayout)
		date = *input.Date
	}
	startTime := meeting.StartTime
	timeChanged := false
	if input.StartTime != nil {
		timeChanged = *input.StartTime != meeting.StartTime
		startTime = *input.StartTime
	}

	instant, err := meetingInstant(date, startTime)
	if err != nil {
		return nil, err
	}
	if instant.Before(time.Now().UTC()) {
		return nil, ErrMeetingInPast
	}

	if dateChanged || timeChanged {
		if existing, err := s.meetingRepo.FindBySlot(teamID, date, startTime); err == nil {
			if existing.ID != meeting.ID {
				return nil, ErrSlotTaken
			}
		} else if !apierrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.StorageError("Something went wrong when checking the meeting slot", err)
		}
	}

	var participantIDs []uint64
	if input.ParticipantIDs != nil {
		participantIDs = *input.ParticipantIDs
		if len(participantIDs) == 0 {
			return nil, ErrEmptyParticipants
		}
		for _, participantID := range participantIDs {
			if _, err := userInTeam(s.teamRepo, teamID, participantID); err != nil {
				return nil, err
			}
		}
	}

	if input.Name != nil {
		meeting.Name = *input.Name
	}
	meeting.Date = date
	meeting.StartTime = startTime

	if err := s.meetingRepo.Update(meeting, participantIDs); err != nil {
		return nil, apierrors.StorageError("Something went wrong when updating the meeting", err)
	}

	return s.reload(meeting.ID)
}

// Delete removes the meeting and its participants after the ownership
// check.
func (s *MeetingService) Delete(meetingID, teamID uint64) error {
	if _, err := meetingInTeam(s.meetingRepo, meetingID, teamID); err != nil {
		return err
	}
	if err := s.meetingRepo.Delete(meetingID); err != nil {
		return apierrors.StorageError("Something went wrong when deleting the meeting", err)
	}
	return nil
}

func (s *MeetingService) reload(meetingID uint64) (*models.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(meetingID, "Participants.User")
	if err != nil {
		return nil, apierrors.StorageError("Something went wrong when loading the meeting", err)
	}
	return meeting, nil
}
