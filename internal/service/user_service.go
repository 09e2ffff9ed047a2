package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
)

// UserService handles the admin user directory
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetList returns every account
func (s *UserService) GetList() ([]domain.User, error) {
	return s.userRepo.FindAll()
}

// Create provisions an account with an explicit role. Unlike self-service
// registration this may assign any role, including admin.
func (s *UserService) Create(req *domain.CreateUserRequest) (*domain.User, error) {
	role, err := domain.ParseUserRole(req.UserRole)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %w", err)
	}

	user := &domain.User{
		Email:      req.Email,
		Password:   string(hashed),
		FullName:   req.FullName,
		UserRole:   role,
		Department: req.Department,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole changes an account's role
func (s *UserService) UpdateRole(id uint64, req *domain.UpdateRoleRequest) (*domain.User, error) {
	role, err := domain.ParseUserRole(req.UserRole)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}

	if err := s.userRepo.UpdateRole(id, role); err != nil {
		return nil, err
	}
	user.UserRole = role
	return user, nil
}
