package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
	"github.com/mkravets/business-management-api/internal/utils"
)

type taskServiceEnv struct {
	db     *gorm.DB
	tasks  *TaskService
	teamID uint64
	admin  *models.User
	worker *models.User
}

func setupTaskService(t *testing.T) taskServiceEnv {
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

	return taskServiceEnv{
		db: db,
		tasks: NewTaskService(
			repository.NewTaskRepository(db),
			teamRepo,
			repository.NewEvaluationRepository(db),
		),
		teamID: team.ID,
		admin:  admin,
		worker: worker,
	}
}

func TestCreateTaskRejectsPastDeadline(t *testing.T) {
	env := setupTaskService(t)

	_, err := env.tasks.Create(env.teamID, CreateTaskInput{
		Description: "late",
		Deadline:    futureDay(-1),
	})
	require.ErrorIs(t, err, ErrDeadlineInPast)
	require.ErrorIs(t, err, apierrors.ErrValidation)

	// Today itself is still acceptable.
	_, err = env.tasks.Create(env.teamID, CreateTaskInput{
		Description: "due today",
		Deadline:    futureDay(0),
	})
	require.NoError(t, err)
}

func TestCreateTaskRejectsOutsidePerformer(t *testing.T) {
	env := setupTaskService(t)

	outsider := createTestUser(t, env.db, "outsider")

	_, err := env.tasks.Create(env.teamID, CreateTaskInput{
		Description: "for a stranger",
		Deadline:    futureDay(1),
		PerformerID: &outsider.ID,
	})
	require.ErrorIs(t, err, ErrUserNotInTeam)
}

func TestCreateTaskDefaultsToOpen(t *testing.T) {
	env := setupTaskService(t)

	task, err := env.tasks.Create(env.teamID, CreateTaskInput{
		Description: "ship it",
		Deadline:    futureDay(3),
		PerformerID: &env.worker.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, task.ID)
	require.Equal(t, models.TaskStatusOpen, task.Status)
	require.Equal(t, env.teamID, task.TeamID)
	require.NotNil(t, task.PerformerID)
	require.Equal(t, env.worker.ID, *task.PerformerID)
}

func TestUpdateTaskPartial(t *testing.T) {
	env := setupTaskService(t)

	task, err := env.tasks.Create(env.teamID, CreateTaskInput{
		Description: "draft",
		Deadline:    futureDay(3),
		Status:      models.TaskStatusWork,
		PerformerID: &env.worker.ID,
	})
	require.NoError(t, err)

	desc := "refined"
	updated, err := env.tasks.Update(task.ID, env.teamID, UpdateTaskInput{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "refined", updated.Description)

	// Untouched fields survive the partial update.
	require.Equal(t, models.TaskStatusWork, updated.Status)
	require.NotNil(t, updated.PerformerID)
	require.Equal(t, env.worker.ID, *updated.PerformerID)

	_, err = env.tasks.Update(task.ID, env.teamID, UpdateTaskInput{Deadline: timePtr(futureDay(-2))})
	require.ErrorIs(t, err, ErrDeadlineInPast)

	outsider := createTestUser(t, env.db, "outsider")
	_, err = env.tasks.Update(task.ID, env.teamID, UpdateTaskInput{PerformerID: &outsider.ID})
	require.ErrorIs(t, err, ErrUserNotInTeam)
}

func TestTaskTeamMismatch(t *testing.T) {
	env := setupTaskService(t)

	task, err := env.tasks.Create(env.teamID, CreateTaskInput{
		Description: "ours",
		Deadline:    futureDay(3),
	})
	require.NoError(t, err)

	other := &models.Team{Name: "Other"}
	require.NoError(t, env.db.Create(other).Error)

	status := models.TaskStatusCompleted
	_, err = env.tasks.Update(task.ID, other.ID, UpdateTaskInput{Status: &status})
	require.ErrorIs(t, err, ErrTaskTeamMismatch)
	require.ErrorIs(t, err, apierrors.ErrForbidden)

	err = env.tasks.Delete(task.ID, other.ID)
	require.ErrorIs(t, err, ErrTaskTeamMismatch)

	_, err = env.tasks.Evaluate(task.ID, other.ID, env.admin.ID, 5)
	require.ErrorIs(t, err, ErrTaskTeamMismatch)
}

func TestTaskMissing(t *testing.T) {
	env := setupTaskService(t)

	_, err := env.tasks.Update(999, env.teamID, UpdateTaskInput{})
	require.ErrorIs(t, err, ErrTaskNotFound)

	err = env.tasks.Delete(999, env.teamID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestEvaluateOverwrites(t *testing.T) {
	env := setupTaskService(t)

	task, err := env.tasks.Create(env.teamID, CreateTaskInput{
		Description: "score me",
		Deadline:    futureDay(3),
		PerformerID: &env.worker.ID,
	})
	require.NoError(t, err)

	first, err := env.tasks.Evaluate(task.ID, env.teamID, env.admin.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 3, first.Value)
	require.Equal(t, env.admin.ID, first.EvaluatorID)

	second, err := env.tasks.Evaluate(task.ID, env.teamID, env.worker.ID, 5)
	require.NoError(t, err)
	require.Equal(t, 5, second.Value)
	require.Equal(t, env.worker.ID, second.EvaluatorID)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, env.db.Model(&models.Evaluation{}).
		Where("task_id = ?", task.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestListTasksPagination(t *testing.T) {
	env := setupTaskService(t)

	for i := 0; i < 5; i++ {
		input := CreateTaskInput{Description: "task", Deadline: futureDay(i + 1)}
		if i%2 == 1 {
			input.PerformerID = &env.worker.ID
		}
		_, err := env.tasks.Create(env.teamID, input)
		require.NoError(t, err)
	}

	all, err := env.tasks.ListByTeam(env.teamID, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, all, 5)

	page, err := env.tasks.ListByTeam(env.teamID, utils.PaginationParams{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, all[1].ID, page[0].ID)
	require.Equal(t, all[2].ID, page[1].ID)

	mine, err := env.tasks.ListForPerformer(env.teamID, env.worker.ID, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, task := range mine {
		require.NotNil(t, task.PerformerID)
		require.Equal(t, env.worker.ID, *task.PerformerID)
	}
}

func TestDeleteTaskCascades(t *testing.T) {
	env := setupTaskService(t)

	task, err := env.tasks.Create(env.teamID, CreateTaskInput{
		Description: "doomed",
		Deadline:    futureDay(3),
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Create(&models.Comment{
		Text: "soon gone", UserID: env.admin.ID, TaskID: task.ID,
	}).Error)
	_, err = env.tasks.Evaluate(task.ID, env.teamID, env.admin.ID, 4)
	require.NoError(t, err)

	require.NoError(t, env.tasks.Delete(task.ID, env.teamID))

	err = env.db.First(&models.Task{}, task.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Evaluation{}).Where("task_id = ?", task.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestStorageFailureMapsToStorageKind(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnError(errors.New("connection refused"))

	svc := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewTeamRepository(db),
		repository.NewEvaluationRepository(db),
	)

	err = svc.Delete(1, 1)
	require.ErrorIs(t, err, apierrors.ErrStorage)
	require.Equal(t, "Something went wrong when loading the task", apierrors.Message(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
