package repository

import (
	"github.com/mkravets/business-management-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete deletes a user and everything they own in a transaction.
// Tasks they performed stay with the team, unassigned; teams where
// they were the last member go away entirely.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("evaluator_id = ?", id).Delete(&models.Evaluation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.MeetingParticipant{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).Where("performer_id = ?", id).
			Update("performer_id", nil).Error; err != nil {
			return err
		}

		var memberships []models.TeamMember
		if err := tx.Where("user_id = ?", id).Find(&memberships).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		for _, m := range memberships {
			var remaining int64
			if err := tx.Model(&models.TeamMember{}).Where("team_id = ?", m.TeamID).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				if err := deleteTeamCascade(tx, m.TeamID); err != nil {
					return err
				}
			}
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
