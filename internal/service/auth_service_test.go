package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/hunt-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
	"github.com/yourusername/hunt-api/pkg/auth"
)

func newTestAuthService(t *testing.T, userRepo *MockUserRepository) *AuthService {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret-key", 24)
	require.NoError(t, err)
	svc, err := NewAuthService(userRepo, jwtService)
	require.NoError(t, err)
	return svc
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_RegisterUser_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	svc := newTestAuthService(t, mockUserRepo)

	// Act
	user, err := svc.RegisterUser(RegisterInput{
		Username: "petya",
		Email:    "  Petya@Example.COM ",
		Password: "secret-password",
	})

	// Assert
	require.NoError(t, err)
	// Email нормализуется до нижнего регистра
	assert.Equal(t, "petya@example.com", user.Email)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_ShortPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newTestAuthService(t, mockUserRepo)

	_, err := svc.RegisterUser(RegisterInput{
		Username: "petya",
		Email:    "petya@example.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(apperrors.ErrConflict)

	svc := newTestAuthService(t, mockUserRepo)

	_, err := svc.RegisterUser(RegisterInput{
		Username: "petya",
		Email:    "petya@example.com",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAuthService_LoginUser_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	user := &entity.User{
		ID:       10,
		Username: "petya",
		Email:    "petya@example.com",
		Password: hashedPassword(t, "secret-password"),
	}
	mockUserRepo.On("GetByEmail", "petya@example.com").Return(user, nil)

	svc := newTestAuthService(t, mockUserRepo)

	// Act
	token, got, err := svc.LoginUser("petya@example.com", "secret-password")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(10), got.ID)
}

func TestAuthService_LoginUser_WrongPassword(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	user := &entity.User{
		ID:       10,
		Email:    "petya@example.com",
		Password: hashedPassword(t, "secret-password"),
	}
	mockUserRepo.On("GetByEmail", "petya@example.com").Return(user, nil)

	svc := newTestAuthService(t, mockUserRepo)

	// Act
	_, _, err := svc.LoginUser("petya@example.com", "wrong-password")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_LoginUser_UnknownEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	svc := newTestAuthService(t, mockUserRepo)

	// Act
	_, _, err := svc.LoginUser("ghost@example.com", "whatever-password")

	// Assert: та же ошибка, что и при неверном пароле
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	user := &entity.User{
		ID:       10,
		Password: hashedPassword(t, "old-password"),
	}
	mockUserRepo.On("GetByID", uint(10)).Return(user, nil)

	svc := newTestAuthService(t, mockUserRepo)

	// Act
	err := svc.ChangePassword(10, "not-the-old-one", "new-password-1")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockUserRepo.AssertNotCalled(t, "Update", mock.Anything)
}
