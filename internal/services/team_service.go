package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
)

var (
	ErrTeamNotFound   = apierrors.NotFoundError("Team not found")
	ErrMemberNotFound = apierrors.NotFoundError("The user is not a member of this team")
)

// TeamService manages teams, memberships and per-member scoring.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	evalRepo repository.EvaluationRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, evalRepo repository.EvaluationRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		evalRepo: evalRepo,
	}
}

// CreateTeam creates a team and makes the creator its admin in one
// transaction.
func (s *TeamService) CreateTeam(name string, creatorID uint64) (*models.Team, error) {
	team := &models.Team{Name: name}
	if err := s.teamRepo.CreateWithAdmin(team, creatorID); err != nil {
		return nil, apierrors.StorageError("Something went wrong when creating the team", err)
	}
	return team, nil
}

// AssignRole adds the user to the team with the given role, or updates
// the role in place when the membership already exists.
func (s *TeamService) AssignRole(teamID, userID uint64, role models.TeamRole) (*models.TeamMember, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apierrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apierrors.StorageError("Something went wrong when loading the user", err)
	}

	member := &models.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.UpsertMember(member); err != nil {
		return nil, apierrors.StorageError("Something went wrong while adding the user-team association", err)
	}
	member.User = *user

	return member, nil
}

// GetMembers lists the team roster. Teams always keep at least their
// creator, so an empty roster means the team never existed.
func (s *TeamService) GetMembers(teamID uint64) ([]models.TeamMember, error) {
	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, apierrors.StorageError("Something went wrong when loading the members", err)
	}
	if len(members) == 0 {
		return nil, ErrTeamNotFound
	}
	return members, nil
}

// GetTeamsForUser lists the user's memberships with the team preloaded.
func (s *TeamService) GetTeamsForUser(userID uint64) ([]models.TeamMember, error) {
	members, err := s.teamRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, apierrors.StorageError("Something went wrong when loading the teams", err)
	}
	return members, nil
}

// RemoveMember deletes a membership. The last membership takes the
// team and everything under it along.
func (s *TeamService) RemoveMember(teamID, userID uint64) error {
	if err := s.teamRepo.RemoveMember(teamID, userID); err != nil {
		if apierrors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return apierrors.StorageError("Something went wrong when removing the member", err)
	}
	return nil
}

// AverageScore computes the average evaluation value over the user's
// tasks in the team, optionally bounded by a created_at range. No
// matching evaluations yields 0.0, never an error.
func (s *TeamService) AverageScore(userID, teamID uint64, from, to *time.Time) (float64, error) {
	avg, err := s.evalRepo.AverageForPerformer(userID, teamID, from, to)
	if err != nil {
		return 0, apierrors.StorageError("Something went wrong when computing the average score", err)
	}
	return math.Round(avg*100) / 100, nil
}
