package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flowhq/approval-backend/internal/domain"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email, nil when not found
func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByID returns a user by ID, nil when not found
func (r *UserRepository) FindByID(id uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindAll returns every user ordered by email
func (r *UserRepository) FindAll() ([]domain.User, error) {
	var users []domain.User
	err := r.db.Order("email ASC").Find(&users).Error
	return users, err
}

// Create inserts a new user
func (r *UserRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

// UpdateRole changes a user's role
func (r *UserRepository) UpdateRole(id uint64, role domain.UserRole) error {
	return r.db.Model(&domain.User{}).
		Where("id = ?", id).
		Update("user_role", role).Error
}

// CountByRole returns the number of users per role
func (r *UserRepository) CountByRole() (map[string]int64, error) {
	type row struct {
		UserRole string
		Count    int64
	}
	var rows []row
	err := r.db.Model(&domain.User{}).
		Select("user_role, COUNT(*) as count").
		Group("user_role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.UserRole] = rw.Count
	}
	return counts, nil
}
