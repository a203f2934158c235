package services_test

import (
	"fmt"
	"testing"
	"time"

	"yaraan/internal/models"
	"yaraan/internal/repositories"
	"yaraan/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_CreateAccount(t *testing.T) {
	notFound := fmt.Errorf("user %w", repositories.ErrNotFound)

	t.Run("hashes the password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test_jwt_secret", &testLogger)

		mockRepo.On("GetByUsername", "maryam").Return(nil, notFound).Once()
		mockRepo.On("GetByEmail", "maryam@example.com").Return(nil, notFound).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

		account, err := authService.CreateAccount("maryam", "maryam@example.com", "password123", false)
		require.NoError(t, err)
		assert.False(t, account.IsAdmin)
		assert.NotEqual(t, "password123", account.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("password123")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("username taken", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test_jwt_secret", &testLogger)

		mockRepo.On("GetByUsername", "maryam").Return(&models.User{ID: "1"}, nil).Once()

		_, err := authService.CreateAccount("maryam", "maryam@example.com", "password123", false)
		assert.EqualError(t, err, "username 'maryam' already taken")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test_jwt_secret", &testLogger)

		mockRepo.On("GetByUsername", "maryam").Return(nil, notFound).Once()
		mockRepo.On("GetByEmail", "maryam@example.com").Return(&models.User{ID: "1"}, nil).Once()

		_, err := authService.CreateAccount("maryam", "maryam@example.com", "password123", false)
		assert.EqualError(t, err, "email 'maryam@example.com' already registered")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestAuthService_LoginUser(t *testing.T) {
	const secret = "test_jwt_secret"
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := &models.User{ID: "user-123", Username: "admin", Email: "admin@example.com", Password: string(hash), IsAdmin: true}

	t.Run("issues token with admin claim", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, secret, &testLogger)
		mockRepo.On("GetByUsername", "admin").Return(admin, nil).Once()

		token, err := authService.LoginUser("admin", "password123")
		require.NoError(t, err)

		claims, err := authService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, claims["user_id"])
		assert.Equal(t, admin.Username, claims["username"])
		assert.Equal(t, true, claims["is_admin"])
		mockRepo.AssertExpectations(t)
	})

	tests := []struct {
		name     string
		username string
		password string
		user     *models.User
		err      error
	}{
		{name: "wrong password", username: "admin", password: "wrongpassword", user: admin},
		{name: "unknown user", username: "ghost", password: "password123", err: notFoundUser("ghost")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			authService := services.NewAuthService(mockRepo, secret, &testLogger)
			if tt.user != nil {
				mockRepo.On("GetByUsername", tt.username).Return(tt.user, nil).Once()
			} else {
				mockRepo.On("GetByUsername", tt.username).Return(nil, tt.err).Once()
			}

			token, err := authService.LoginUser(tt.username, tt.password)
			assert.ErrorIs(t, err, services.ErrInvalidCredentials)
			assert.Empty(t, token)
			mockRepo.AssertExpectations(t)
		})
	}
}

func notFoundUser(username string) error {
	return fmt.Errorf("user with username %s %w", username, repositories.ErrNotFound)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret, &testLogger)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(), // Expires in 1 hour
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	// Test invalid token (wrong secret)
	invalidTokenString := "invalid.token.string"
	_, err = authService.ValidateToken(invalidTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(), // Expired 1 hour ago
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Run("creates missing admin", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test_jwt_secret", &testLogger)

		notFound := fmt.Errorf("user with username admin %w", repositories.ErrNotFound)
		mockRepo.On("GetByUsername", "admin").Return(nil, notFound).Twice()
		mockRepo.On("GetByEmail", "admin@example.com").Return(nil, notFound).Once()
		mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "admin" && u.IsAdmin &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pass")) == nil
		})).Return(nil).Once()

		err := authService.EnsureAdmin("admin", "admin@example.com", "s3cret-pass")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("keeps existing admin", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test_jwt_secret", &testLogger)

		mockRepo.On("GetByUsername", "admin").Return(&models.User{ID: "1", Username: "admin"}, nil).Once()

		err := authService.EnsureAdmin("admin", "admin@example.com", "s3cret-pass")
		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("lookup failure", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, "test_jwt_secret", &testLogger)

		mockRepo.On("GetByUsername", "admin").Return(nil, fmt.Errorf("connection refused")).Once()

		err := authService.EnsureAdmin("admin", "admin@example.com", "s3cret-pass")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
