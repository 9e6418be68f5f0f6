package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/sereneapp/serene/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create inserts a new user after validating input.
func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.validateUserInput(user); err != nil {
		log.Printf("[UserRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// Secure logging - no credentials exposed
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	log.Printf("[UserRepository] User created successfully with ID: %d", user.ID)
	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user)
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username cannot be empty")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return r.handleFindError(err, &user)
}

func (r *gormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, errors.New("username cannot be empty")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		log.Printf("[UserRepository] Database error checking username existence: %v", err)
		return false, errors.New("database error checking username")
	}
	return count > 0, nil
}

func (r *gormUserRepository) validateUserInput(user *domain.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	if err := user.IsValid(); err != nil {
		return err
	}
	if user.Password == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// handleFindError hides database details from callers while logging them.
func (r *gormUserRepository) handleFindError(err error, user *domain.User) (*domain.User, error) {
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	log.Printf("[UserRepository] Database error: %v", err)
	return nil, errors.New("database query failed")
}
