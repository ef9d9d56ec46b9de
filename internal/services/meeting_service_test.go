package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
	"github.com/mkravets/business-management-api/internal/utils"
)

type meetingServiceEnv struct {
	db       *gorm.DB
	meetings *MeetingService
	teamID   uint64
	admin    *models.User
	worker   *models.User
}

func setupMeetingService(t *testing.T) meetingServiceEnv {
	t.Helper()

	db := openTestDB(t)
	teamRepo := repository.NewTeamRepository(db)

	admin := createTestUser(t, db, "admin")
	worker := createTestUser(t, db, "worker")

	team := &models.Team{Name: "Platform"}
	require.NoError(t, teamRepo.CreateWithAdmin(team, admin.ID))
	require.NoError(t, teamRepo.UpsertMember(&models.TeamMember{
		TeamID: team.ID, UserID: worker.ID, Role: models.RoleUser, JoinedAt: time.Now(),
	}))

	return meetingServiceEnv{
		db:       db,
		meetings: NewMeetingService(repository.NewMeetingRepository(db), teamRepo),
		teamID:   team.ID,
		admin:    admin,
		worker:   worker,
	}
}

func TestCreateMeetingValidation(t *testing.T) {
	env := setupMeetingService(t)

	_, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(1), StartTime: "10:00",
	})
	require.ErrorIs(t, err, ErrEmptyParticipants)
	require.ErrorIs(t, err, apierrors.ErrValidation)

	_, err = env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(-1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.admin.ID},
	})
	require.ErrorIs(t, err, ErrMeetingInPast)

	_, err = env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(1), StartTime: "quarter past",
		ParticipantIDs: []uint64{env.admin.ID},
	})
	require.ErrorIs(t, err, ErrInvalidMeetingTime)

	outsider := createTestUser(t, env.db, "outsider")
	_, err = env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.admin.ID, outsider.ID},
	})
	require.ErrorIs(t, err, ErrUserNotInTeam)
}

func TestCreateMeetingReloadsParticipants(t *testing.T) {
	env := setupMeetingService(t)

	meeting, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Planning", Date: futureDay(2), StartTime: "14:30",
		ParticipantIDs: []uint64{env.admin.ID, env.worker.ID},
	})
	require.NoError(t, err)
	require.NotZero(t, meeting.ID)
	require.Len(t, meeting.Participants, 2)

	usernames := make([]string, 0, len(meeting.Participants))
	for _, p := range meeting.Participants {
		usernames = append(usernames, p.User.Username)
	}
	require.ElementsMatch(t, []string{"admin", "worker"}, usernames)
}

func TestCreateMeetingSlotCollision(t *testing.T) {
	env := setupMeetingService(t)

	_, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.admin.ID},
	})
	require.NoError(t, err)

	// Different participants do not free the slot.
	_, err = env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Retro", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.worker.ID},
	})
	require.ErrorIs(t, err, ErrSlotTaken)

	_, err = env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Retro", Date: futureDay(1), StartTime: "11:00",
		ParticipantIDs: []uint64{env.worker.ID},
	})
	require.NoError(t, err)
}

func TestUpdateMeetingKeepsOwnSlot(t *testing.T) {
	env := setupMeetingService(t)

	meeting, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.admin.ID, env.worker.ID},
	})
	require.NoError(t, err)

	// Resubmitting the same slot alongside a rename is not a
	// collision with itself.
	name := "Daily standup"
	start := "10:00"
	updated, err := env.meetings.Update(meeting.ID, env.teamID, UpdateMeetingInput{
		Name:      &name,
		Date:      timePtr(futureDay(1)),
		StartTime: &start,
	})
	require.NoError(t, err)
	require.Equal(t, "Daily standup", updated.Name)
	require.Equal(t, "10:00", updated.StartTime)
	require.Len(t, updated.Participants, 2)
}

func TestUpdateMeetingToOccupiedSlot(t *testing.T) {
	env := setupMeetingService(t)

	_, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.admin.ID},
	})
	require.NoError(t, err)

	second, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Retro", Date: futureDay(1), StartTime: "11:00",
		ParticipantIDs: []uint64{env.admin.ID},
	})
	require.NoError(t, err)

	start := "10:00"
	_, err = env.meetings.Update(second.ID, env.teamID, UpdateMeetingInput{StartTime: &start})
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestUpdateMeetingRejectsPastInstant(t *testing.T) {
	env := setupMeetingService(t)

	meeting, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.admin.ID},
	})
	require.NoError(t, err)

	_, err = env.meetings.Update(meeting.ID, env.teamID, UpdateMeetingInput{
		Date: timePtr(futureDay(-1)),
	})
	require.ErrorIs(t, err, ErrMeetingInPast)
}

func TestUpdateMeetingParticipants(t *testing.T) {
	env := setupMeetingService(t)

	meeting, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Planning", Date: futureDay(2), StartTime: "14:30",
		ParticipantIDs: []uint64{env.admin.ID, env.worker.ID},
	})
	require.NoError(t, err)

	// A nil list keeps the current set.
	name := "Sprint planning"
	updated, err := env.meetings.Update(meeting.ID, env.teamID, UpdateMeetingInput{Name: &name})
	require.NoError(t, err)
	require.Len(t, updated.Participants, 2)

	// A provided list replaces the set wholesale.
	replacement := []uint64{env.worker.ID}
	updated, err = env.meetings.Update(meeting.ID, env.teamID, UpdateMeetingInput{
		ParticipantIDs: &replacement,
	})
	require.NoError(t, err)
	require.Len(t, updated.Participants, 1)
	require.Equal(t, env.worker.ID, updated.Participants[0].UserID)

	empty := []uint64{}
	_, err = env.meetings.Update(meeting.ID, env.teamID, UpdateMeetingInput{
		ParticipantIDs: &empty,
	})
	require.ErrorIs(t, err, ErrEmptyParticipants)

	outsider := createTestUser(t, env.db, "outsider")
	strangers := []uint64{outsider.ID}
	_, err = env.meetings.Update(meeting.ID, env.teamID, UpdateMeetingInput{
		ParticipantIDs: &strangers,
	})
	require.ErrorIs(t, err, ErrUserNotInTeam)
}

func TestDeleteMeetingFreesSlot(t *testing.T) {
	env := setupMeetingService(t)

	meeting, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.admin.ID},
	})
	require.NoError(t, err)

	require.NoError(t, env.meetings.Delete(meeting.ID, env.teamID))

	err = env.db.First(&models.Meeting{}, meeting.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, env.db.Model(&models.MeetingParticipant{}).
		Where("meeting_id = ?", meeting.ID).Count(&count).Error)
	require.Zero(t, count)

	_, err = env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup again", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.worker.ID},
	})
	require.NoError(t, err)
}

func TestMeetingOwnership(t *testing.T) {
	env := setupMeetingService(t)

	meeting, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Standup", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.admin.ID},
	})
	require.NoError(t, err)

	_, err = env.meetings.Update(999, env.teamID, UpdateMeetingInput{})
	require.ErrorIs(t, err, ErrMeetingNotFound)

	other := &models.Team{Name: "Other"}
	require.NoError(t, env.db.Create(other).Error)

	_, err = env.meetings.Update(meeting.ID, other.ID, UpdateMeetingInput{})
	require.ErrorIs(t, err, ErrMeetingTeamMismatch)
	require.ErrorIs(t, err, apierrors.ErrForbidden)

	err = env.meetings.Delete(meeting.ID, other.ID)
	require.ErrorIs(t, err, ErrMeetingTeamMismatch)
}

func TestListMeetingsForMember(t *testing.T) {
	env := setupMeetingService(t)

	_, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Admins only", Date: futureDay(1), StartTime: "10:00",
		ParticipantIDs: []uint64{env.admin.ID},
	})
	require.NoError(t, err)

	shared, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Both", Date: futureDay(1), StartTime: "11:00",
		ParticipantIDs: []uint64{env.admin.ID, env.worker.ID},
	})
	require.NoError(t, err)

	solo, err := env.meetings.Create(env.teamID, CreateMeetingInput{
		Name: "Worker only", Date: futureDay(2), StartTime: "09:00",
		ParticipantIDs: []uint64{env.worker.ID},
	})
	require.NoError(t, err)

	all, err := env.meetings.ListByTeam(env.teamID, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	mine, err := env.meetings.ListForMember(env.teamID, env.worker.ID, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, shared.ID, mine[0].ID)
	require.Equal(t, solo.ID, mine[1].ID)
}
