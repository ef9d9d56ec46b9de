package services

import (
	"gorm.io/gorm"

	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
)

// Cross-entity ownership errors. Task, comment and meeting operations
// all run the same two-step check (entity exists, entity belongs to
// the claimed team), so the checks live here as single shared
// implementations instead of per-service copies.
var (
	ErrTaskNotFound        = apierrors.NotFoundError("Task not found")
	ErrTaskTeamMismatch    = apierrors.ForbiddenError("Task does not belong to the team")
	ErrMeetingNotFound     = apierrors.NotFoundError("Meeting not found")
	ErrMeetingTeamMismatch = apierrors.ForbiddenError("Meeting does not belong to the team")
	ErrUserNotInTeam       = apierrors.NotFoundError("User not found in this team")
)

// taskInTeam loads the task and verifies it belongs to the team.
func taskInTeam(repo repository.TaskRepository, taskID, teamID uint64) (*models.Task, error) {
	task, err := repo.FindByID(taskID)
	if err != nil {
		if apierrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, apierrors.StorageError("Something went wrong when loading the task", err)
	}

	if task.TeamID != teamID {
		return nil, ErrTaskTeamMismatch
	}

	return task, nil
}

// meetingInTeam loads the meeting and verifies it belongs to the team.
func meetingInTeam(repo repository.MeetingRepository, meetingID, teamID uint64) (*models.Meeting, error) {
	meeting, err := repo.FindByID(meetingID)
	if err != nil {
		if apierrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, apierrors.StorageError("Something went wrong when loading the meeting", err)
	}

	if meeting.TeamID != teamID {
		return nil, ErrMeetingTeamMismatch
	}

	return meeting, nil
}

// userInTeam verifies the user holds a membership in the team.
func userInTeam(repo repository.TeamRepository, teamID, userID uint64) (*models.TeamMember, error) {
	member, err := repo.FindMember(teamID, userID)
	if err != nil {
		if apierrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotInTeam
		}
		return nil, apierrors.StorageError("Something went wrong when checking the membership", err)
	}

	return member, nil
}
