package dto

import (
	"time"

	"github.com/mkravets/business-management-api/internal/constants"
	"github.com/mkravets/business-management-api/internal/models"
)

// CalendarDayDTO represents the day view of a team calendar
type CalendarDayDTO struct {
	Date   string        `json:"date"`
	Events []interface{} `json:"events"`
}

// CalendarMonthDTO represents the month view of a team calendar
type CalendarMonthDTO struct {
	Year   int           `json:"year"`
	Month  int           `json:"month"`
	Events []interface{} `json:"events"`
}

// ToCalendarDayDTO merges the day's tasks and meetings into one event
// list, tasks first
func ToCalendarDayDTO(date time.Time, tasks []models.Task, meetings []models.Meeting) CalendarDayDTO {
	return CalendarDayDTO{
		Date:   date.Format(constants.DateLayout),
		Events: mergeEvents(tasks, meetings),
	}
}

// ToCalendarMonthDTO merges the month's tasks and meetings into one
// event list, tasks first
func ToCalendarMonthDTO(year int, month time.Month, tasks []models.Task, meetings []models.Meeting) CalendarMonthDTO {
	return CalendarMonthDTO{
		Year:   year,
		Month:  int(month),
		Events: mergeEvents(tasks, meetings),
	}
}

func mergeEvents(tasks []models.Task, meetings []models.Meeting) []interface{} {
	events := make([]interface{}, 0, len(tasks)+len(meetings))
	for _, task := range tasks {
		events = append(events, ToTaskDTO(task))
	}
	for _, meeting := range meetings {
		events = append(events, ToMeetingDTO(meeting))
	}
	return events
}
