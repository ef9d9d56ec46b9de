package repository

import (
	"context"
	"time"

	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete deletes a user and cleans up everything they own
	Delete(id uint64) error
}

// TeamRepository defines the interface for team and membership data access
type TeamRepository interface {
	// CreateWithAdmin creates a team and the creator's ADMIN membership
	// within a single transaction
	CreateWithAdmin(team *models.Team, creatorID uint64) error

	// UpsertMember inserts a membership or updates its role in place
	UpsertMember(member *models.TeamMember) error

	// RemoveMember removes a membership; removing the last one deletes
	// the team and all its data
	RemoveMember(teamID, userID uint64) error

	// FindMember finds a specific team membership
	FindMember(teamID, userID uint64) (*models.TeamMember, error)

	// ListMembers lists all members of a team
	ListMembers(teamID uint64) ([]models.TeamMember, error)

	// ListMembersByUserID lists all teams a user is a member of
	ListMembersByUserID(userID uint64) ([]models.TeamMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByTeam lists a team's tasks
	ListByTeam(teamID uint64, params utils.PaginationParams) ([]models.Task, error)

	// ListByPerformer lists the team tasks assigned to a performer
	ListByPerformer(teamID, performerID uint64, params utils.PaginationParams) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task with its comments and evaluation
	Delete(id uint64) error
}

// EvaluationRepository defines the interface for evaluation data access
type EvaluationRepository interface {
	// Upsert inserts the task's evaluation or overwrites it in place
	Upsert(evaluation *models.Evaluation) error

	// FindByTaskID finds the evaluation of a task
	FindByTaskID(taskID uint64) (*models.Evaluation, error)

	// AverageForPerformer computes the average evaluation value over
	// the user's tasks in a team, optionally windowed by evaluation
	// creation time (from inclusive, to exclusive)
	AverageForPerformer(userID, teamID uint64, from, to *time.Time) (float64, error)
}

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a meeting and attaches its participants
	Create(meeting *models.Meeting, participantIDs []uint64) error

	// FindByID finds a meeting by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Meeting, error)

	// FindBySlot finds the meeting occupying a (team, date, time) slot
	FindBySlot(teamID uint64, date time.Time, startTime string) (*models.Meeting, error)

	// ListByTeam lists a team's meetings with participants
	ListByTeam(teamID uint64, params utils.PaginationParams) ([]models.Meeting, error)

	// ListByParticipant lists the team meetings a user participates in
	ListByParticipant(teamID, userID uint64, params utils.PaginationParams) ([]models.Meeting, error)

	// Update saves the meeting and, when participantIDs is non-nil,
	// replaces the participant set wholesale
	Update(meeting *models.Meeting, participantIDs []uint64) error

	// Delete deletes a meeting and its participants
	Delete(id uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByTask lists a task's comments ordered by creation time
	ListByTask(taskID uint64, params utils.PaginationParams) ([]models.Comment, error)

	// Delete deletes a comment
	Delete(id uint64) error
}

// TokenBlacklist holds revoked tokens until their natural expiry.
type TokenBlacklist interface {
	// Add stores the token for ttl so later lookups see it as revoked
	Add(ctx context.Context, token string, ttl time.Duration) error

	// Contains reports whether the token has been revoked
	Contains(ctx context.Context, token string) (bool, error)
}
