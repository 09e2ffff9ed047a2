package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
	"github.com/flowhq/approval-backend/pkg/jwt"
)

// TokenPair carries the issued access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration, login, and token refresh
type AuthService struct {
	userRepo *repository.UserRepository
	jwt      *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repository.UserRepository, manager *jwt.Manager) *AuthService {
	return &AuthService{userRepo: userRepo, jwt: manager}
}

// Register creates a new account. Role defaults to content_creator;
// self-registration as admin is not allowed.
func (s *AuthService) Register(req *domain.RegisterRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrUserAlreadyExists
	}

	role := domain.RoleContentCreator
	if req.UserRole != "" {
		role, err = domain.ParseUserRole(req.UserRole)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
		if role == domain.RoleAdmin {
			return nil, common.ErrForbidden
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:      req.Email,
		Password:   string(hash),
		FullName:   req.FullName,
		UserRole:   role,
		Department: req.Department,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(req *domain.LoginRequest) (*domain.User, *TokenPair, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, common.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.VerifyToken(refreshToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}
	return s.issueTokens(user)
}

// GetProfile returns the account for an email
func (s *AuthService) GetProfile(email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *domain.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(user.Email, user.FullName, string(user.UserRole))
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
