package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/repository"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	db := setupTestDB(t)
	seedUsers(t, db)
	return NewUserService(repository.NewUserRepository(db))
}

func TestCreateUserWithExplicitRole(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Create(&domain.CreateUserRequest{
		Email:    "newlegal@flow.test",
		Password: "super-secret-1",
		FullName: "New Legal",
		UserRole: "legal_team",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleLegalTeam, user.UserRole)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("super-secret-1")))

	// unlike self-service registration, admin may be assigned directly
	admin, err := svc.Create(&domain.CreateUserRequest{
		Email:    "admin2@flow.test",
		Password: "super-secret-2",
		FullName: "Second Admin",
		UserRole: "admin",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.UserRole)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Create(&domain.CreateUserRequest{
		Email:    "brand@flow.test",
		Password: "super-secret-1",
		FullName: "Dup",
		UserRole: "brand_manager",
	})
	assert.True(t, errors.Is(err, common.ErrUserAlreadyExists))
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Create(&domain.CreateUserRequest{
		Email:    "x@flow.test",
		Password: "super-secret-1",
		FullName: "X",
		UserRole: "intern",
	})
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestUpdateRole(t *testing.T) {
	svc := newUserService(t)

	users, err := svc.GetList()
	assert.NoError(t, err)
	var brand *domain.User
	for i := range users {
		if users[i].Email == "brand@flow.test" {
			brand = &users[i]
		}
	}
	assert.NotNil(t, brand)

	updated, err := svc.UpdateRole(brand.ID, &domain.UpdateRoleRequest{UserRole: "cmo"})
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleCMO, updated.UserRole)

	_, err = svc.UpdateRole(99999, &domain.UpdateRoleRequest{UserRole: "cmo"})
	assert.True(t, errors.Is(err, common.ErrUserNotFound))
}
