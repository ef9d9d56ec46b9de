package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
)

type calendarServiceEnv struct {
	db       *gorm.DB
	calendar *CalendarService
	teamID   uint64
}

func setupCalendarService(t *testing.T) calendarServiceEnv {
	t.Helper()

	db := openTestDB(t)

	team := &models.Team{Name: "Platform"}
	require.NoError(t, db.Create(team).Error)

	return calendarServiceEnv{
		db: db,
		calendar: NewCalendarService(
			repository.NewTaskRepository(db),
			repository.NewMeetingRepository(db),
		),
		teamID: team.ID,
	}
}

func createCalendarTask(t *testing.T, db *gorm.DB, teamID uint64, deadline time.Time) *models.Task {
	t.Helper()

	task := &models.Task{
		Description: "due",
		Deadline:    deadline,
		Status:      models.TaskStatusOpen,
		TeamID:      teamID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func createCalendarMeeting(t *testing.T, db *gorm.DB, teamID uint64, date time.Time, startTime string) *models.Meeting {
	t.Helper()

	meeting := &models.Meeting{
		Name:      "held",
		Date:      date,
		StartTime: startTime,
		TeamID:    teamID,
	}
	require.NoError(t, db.Create(meeting).Error)
	return meeting
}

func TestCalendarByDate(t *testing.T) {
	env := setupCalendarService(t)

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	otherDay := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	onDay := createCalendarTask(t, env.db, env.teamID, day)
	createCalendarTask(t, env.db, env.teamID, otherDay)
	meeting := createCalendarMeeting(t, env.db, env.teamID, day, "10:00")
	createCalendarMeeting(t, env.db, env.teamID, otherDay, "10:00")

	// Another team's calendar stays invisible.
	other := &models.Team{Name: "Other"}
	require.NoError(t, env.db.Create(other).Error)
	createCalendarTask(t, env.db, other.ID, day)

	tasks, meetings, err := env.calendar.ByDate(env.teamID, day)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, onDay.ID, tasks[0].ID)
	require.Len(t, meetings, 1)
	require.Equal(t, meeting.ID, meetings[0].ID)

	// An empty day yields empty slices, not an error.
	tasks, meetings, err = env.calendar.ByDate(env.teamID, time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, tasks)
	require.Empty(t, tasks)
	require.NotNil(t, meetings)
	require.Empty(t, meetings)
}

func TestCalendarByMonth(t *testing.T) {
	env := setupCalendarService(t)

	createCalendarTask(t, env.db, env.teamID, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	createCalendarTask(t, env.db, env.teamID, time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC))
	createCalendarTask(t, env.db, env.teamID, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	createCalendarMeeting(t, env.db, env.teamID, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), "10:00")
	createCalendarMeeting(t, env.db, env.teamID, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), "11:00")

	tasks, meetings, err := env.calendar.ByMonth(env.teamID, 2026, time.September)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Len(t, meetings, 1)

	tasks, meetings, err = env.calendar.ByMonth(env.teamID, 2026, time.October)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Len(t, meetings, 1)

	tasks, meetings, err = env.calendar.ByMonth(env.teamID, 2026, time.November)
	require.NoError(t, err)
	require.Empty(t, tasks)
	require.Empty(t, meetings)
}
