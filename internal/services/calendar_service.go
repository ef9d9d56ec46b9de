package services

import (
	"time"

	"github.com/mkravets/business-management-api/internal/constants"
	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
	"github.com/mkravets/business-management-api/internal/utils"
)

// CalendarService composes day and month views from a team's tasks
// (by deadline) and meetings (by date). Team sets are small enough to
// fetch whole and filter in memory.
type CalendarService struct {
	taskRepo    repository.TaskRepository
	meetingRepo repository.MeetingRepository
}

// NewCalendarService creates a new CalendarService.
func NewCalendarService(taskRepo repository.TaskRepository, meetingRepo repository.MeetingRepository) *CalendarService {
	return &CalendarService{
		taskRepo:    taskRepo,
		meetingRepo: meetingRepo,
	}
}

// ByDate returns the team's tasks due and meetings held on the day.
func (s *CalendarService) ByDate(teamID uint64, date time.Time) ([]models.Task, []models.Meeting, error) {
	tasks, meetings, err := s.load(teamID)
	if err != nil {
		return nil, nil, err
	}

	day := date.Format(constants.DateLayout)
	dayTasks := make([]models.Task, 0)
	for _, task := range tasks {
		if task.Deadline.Format(constants.DateLayout) == day {
			dayTasks = append(dayTasks, task)
		}
	}
	dayMeetings := make([]models.Meeting, 0)
	for _, meeting := range meetings {
		if meeting.Date.Format(constants.DateLayout) == day {
			dayMeetings = append(dayMeetings, meeting)
		}
	}

	return dayTasks, dayMeetings, nil
}

// ByMonth returns the team's tasks due and meetings held in the month.
func (s *CalendarService) ByMonth(teamID uint64, year int, month time.Month) ([]models.Task, []models.Meeting, error) {
	tasks, meetings, err := s.load(teamID)
	if err != nil {
		return nil, nil, err
	}

	monthTasks := make([]models.Task, 0)
	for _, task := range tasks {
		if task.Deadline.Year() == year && task.Deadline.Month() == month {
			monthTasks = append(monthTasks, task)
		}
	}
	monthMeetings := make([]models.Meeting, 0)
	for _, meeting := range meetings {
		if meeting.Date.Year() == year && meeting.Date.Month() == month {
			monthMeetings = append(monthMeetings, meeting)
		}
	}

	return monthTasks, monthMeetings, nil
}

func (s *CalendarService) load(teamID uint64) ([]models.Task, []models.Meeting, error) {
	tasks, err := s.taskRepo.ListByTeam(teamID, utils.PaginationParams{})
	if err != nil {
		return nil, nil, apierrors.StorageError("Something went wrong when loading the tasks", err)
	}
	meetings, err := s.meetingRepo.ListByTeam(teamID, utils.PaginationParams{})
	if err != nil {
		return nil, nil, apierrors.StorageError("Something went wrong when loading the meetings", err)
	}
	return tasks, meetings, nil
}
