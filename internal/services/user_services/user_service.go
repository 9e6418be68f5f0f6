package user_services

import (
	"context"

	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/repository/user"
)

// UserService composes the user-facing account services.
type UserService struct {
	*AuthService
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository, jwtSecret string, logger Logger) *UserService {
	return &UserService{
		AuthService: NewAuthService(userRepo, jwtSecret, logger),
		userRepo:    userRepo,
	}
}

// GetUser fetches a single account by ID.
func (s *UserService) GetUser(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
