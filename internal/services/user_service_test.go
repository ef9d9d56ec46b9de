package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
)

type userServiceEnv struct {
	db    *gorm.DB
	users *UserService
}

func setupUserService(t *testing.T) userServiceEnv {
	t.Helper()

	db := openTestDB(t)
	return userServiceEnv{
		db:    db,
		users: NewUserService(repository.NewUserRepository(db)),
	}
}

func TestGetUserMissing(t *testing.T) {
	env := setupUserService(t)

	_, err := env.users.GetUser(42)
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, err, apierrors.ErrNotFound)
}

func TestUpdateUserRejectsTakenUsername(t *testing.T) {
	env := setupUserService(t)

	createTestUser(t, env.db, "worker")
	other := createTestUser(t, env.db, "other")

	taken := "worker"
	_, err := env.users.UpdateUser(other.ID, UpdateUserInput{Username: &taken})
	require.ErrorIs(t, err, ErrUserExists)

	takenEmail := "worker@example.com"
	_, err = env.users.UpdateUser(other.ID, UpdateUserInput{Email: &takenEmail})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestUpdateUserRejectsShortPassword(t *testing.T) {
	env := setupUserService(t)

	user := createTestUser(t, env.db, "worker")

	short := "nope"
	_, err := env.users.UpdateUser(user.ID, UpdateUserInput{Password: &short})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUpdateUserPartial(t *testing.T) {
	env := setupUserService(t)

	user := createTestUser(t, env.db, "worker")

	firstName := "Renamed"
	lastName := "Person"
	updated, err := env.users.UpdateUser(user.ID, UpdateUserInput{
		FirstName: &firstName,
		LastName:  &lastName,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.FirstName)
	require.NotNil(t, updated.LastName)
	require.Equal(t, "Person", *updated.LastName)

	// Untouched fields survive the partial update.
	require.Equal(t, "worker", updated.Username)
	require.Equal(t, "worker@example.com", updated.Email)
	require.Equal(t, "hashed", updated.PasswordHash)
}

func TestDeleteUserCascades(t *testing.T) {
	env := setupUserService(t)

	victim := createTestUser(t, env.db, "victim")
	survivor := createTestUser(t, env.db, "survivor")

	soloTeam := &models.Team{Name: "Solo"}
	require.NoError(t, env.db.Create(soloTeam).Error)
	require.NoError(t, env.db.Create(&models.TeamMember{
		TeamID: soloTeam.ID, UserID: victim.ID, Role: models.RoleAdmin, JoinedAt: time.Now(),
	}).Error)

	sharedTeam := &models.Team{Name: "Shared"}
	require.NoError(t, env.db.Create(sharedTeam).Error)
	require.NoError(t, env.db.Create(&models.TeamMember{
		TeamID: sharedTeam.ID, UserID: victim.ID, Role: models.RoleManager, JoinedAt: time.Now(),
	}).Error)
	require.NoError(t, env.db.Create(&models.TeamMember{
		TeamID: sharedTeam.ID, UserID: survivor.ID, Role: models.RoleAdmin, JoinedAt: time.Now(),
	}).Error)

	task := &models.Task{
		Description: "Carry on without me",
		Deadline:    futureDay(7),
		Status:      models.TaskStatusOpen,
		PerformerID: &victim.ID,
		TeamID:      sharedTeam.ID,
	}
	require.NoError(t, env.db.Create(task).Error)
	require.NoError(t, env.db.Create(&models.Comment{
		Text: "on it", UserID: victim.ID, TaskID: task.ID,
	}).Error)
	require.NoError(t, env.db.Create(&models.Evaluation{
		Value: 4, EvaluatorID: victim.ID, TaskID: task.ID,
	}).Error)

	meeting := &models.Meeting{
		Name: "Standup", Date: futureDay(1), StartTime: "10:00", TeamID: sharedTeam.ID,
	}
	require.NoError(t, env.db.Create(meeting).Error)
	require.NoError(t, env.db.Create(&models.MeetingParticipant{
		MeetingID: meeting.ID, UserID: victim.ID,
	}).Error)

	require.NoError(t, env.users.DeleteUser(victim.ID))

	err := env.db.First(&models.User{}, victim.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The team the victim held alone goes away, the shared one stays.
	err = env.db.First(&models.Team{}, soloTeam.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, env.db.First(&models.Team{}, sharedTeam.ID).Error)

	var reloaded models.Task
	require.NoError(t, env.db.First(&reloaded, task.ID).Error)
	require.Nil(t, reloaded.PerformerID)

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Where("user_id = ?", victim.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Evaluation{}).Where("evaluator_id = ?", victim.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.MeetingParticipant{}).Where("user_id = ?", victim.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.TeamMember{}).Where("user_id = ?", victim.ID).Count(&count).Error)
	require.Zero(t, count)

	_, err = env.users.GetUser(victim.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
