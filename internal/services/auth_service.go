package services

import (
	"errors"
	"fmt"
	"time"

	"yaraan/internal/models"
	"yaraan/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin authentication.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		logger:     logger.With().Str("component", "AuthService").Logger(),
	}
}

// ErrInvalidCredentials is returned for any failed login, whether or not the username exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CreateAccount stores a console account with a bcrypt-hashed password.
// Usernames and emails are unique across accounts.
func (s *AuthService) CreateAccount(username, email, password string, isAdmin bool) (*models.User, error) {
	if taken, err := s.userRepo.GetByUsername(username); err == nil && taken != nil {
		return nil, fmt.Errorf("username '%s' already taken", username)
	}
	if taken, err := s.userRepo.GetByEmail(email); err == nil && taken != nil {
		return nil, fmt.Errorf("email '%s' already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.User{Username: username, Email: email, Password: string(hash), IsAdmin: isAdmin}
	if err := s.userRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account %s: %w", username, err)
	}
	return account, nil
}

// EnsureAdmin creates the bootstrap administrator unless the username already exists.
// An existing account keeps its password; the configured one only applies on first start.
func (s *AuthService) EnsureAdmin(username, email, password string) error {
	existing, err := s.userRepo.GetByUsername(username)
	switch {
	case err == nil && existing != nil:
		s.logger.Debug().Str("username", username).Msg("Bootstrap admin already present")
		return nil
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("failed to look up admin %s: %w", username, err)
	}

	if _, err := s.CreateAccount(username, email, password, true); err != nil {
		return err
	}
	s.logger.Info().Str("username", username).Msg("Bootstrap admin created")
	return nil
}

// LoginUser checks the password and returns a signed token carrying the is_admin claim.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		s.logger.Debug().Err(err).Msg("Token validation error")
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
