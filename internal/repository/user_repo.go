package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// UserRepository defines the interface for editorial account data access
type UserRepository interface {
	FindByUsername(username string) (*domain.User, error)
	FindByID(id uint64) (*domain.User, error)
	Create(user *domain.User) error
	TouchLastLogin(id uint64) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUsername finds a user by username
func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(id uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

// TouchLastLogin records a successful login
func (r *userRepository) TouchLastLogin(id uint64) error {
	now := time.Now()
	return r.db.Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login_at", now).Error
}
