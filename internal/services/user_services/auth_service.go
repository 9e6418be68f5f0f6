package user_services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/sereneapp/serene/internal/auth"
	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/repository/user"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	logger       Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		logger:       logger,
	}
}

// Register creates a new account with a hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := s.validateRegistrationInput(username, password); err != nil {
		s.logger.Warn("registration validation failed", "error", err.Error())
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error("registration lookup failed", "error", err)
		return nil, errors.New("could not check username availability")
	}
	if taken {
		s.logger.Warn("registration failed - username already exists",
			"username", maskName(username))
		return nil, errors.New("username already taken")
	}

	newUser := &domain.User{Username: username}
	if err := newUser.HashPassword(password); err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		s.logger.Error("user creation failed", "error", err, "username", maskName(username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"username", maskName(username), "user_id", created.ID)
	return created, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		s.logger.Warn("login attempt with empty credentials",
			"has_username", username != "", "has_password", password != "")
		return nil, "", errors.New("username and password are required")
	}

	account, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login failed - user not found", "username", maskName(username))
		return nil, "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed - invalid password",
			"username", maskName(username), "user_id", account.ID)
		return nil, "", errors.New("invalid credentials")
	}

	token, err := auth.GenerateJWT(account.ID, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Error("JWT token generation failed", "error", err, "user_id", account.ID)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "username", maskName(username), "user_id", account.ID)
	return account, token, nil
}

// ValidateJWTToken validates a session token and returns the user ID.
func (s *AuthService) ValidateJWTToken(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, errors.New("empty token")
	}
	userID, err := auth.ValidateToken(tokenString, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Warn("JWT token validation failed", "error", err)
		return 0, fmt.Errorf("invalid token: %w", err)
	}
	return userID, nil
}

func (s *AuthService) validateRegistrationInput(username, password string) error {
	if !usernameRegex.MatchString(username) {
		return errors.New("username must be 3-20 characters, alphanumeric or underscore")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// maskName keeps log lines free of full account identifiers.
func maskName(username string) string {
	if len(username) <= 4 {
		return "****"
	}
	return username[:4] + "****"
}
