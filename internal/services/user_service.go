package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/alurafake/course-service/internal/auth"
	"github.com/alurafake/course-service/internal/events"
	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
	"github.com/alurafake/course-service/internal/validator"
)

type userService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	hasher         *auth.PasswordHasher
	eventPublisher events.EventPublisher
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, hasher *auth.PasswordHasher, eventPublisher events.EventPublisher) UserService {
	return &userService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		hasher:         hasher,
		eventPublisher: eventPublisher,
	}
}

func (s *userService) Create(ctx context.Context, req *NewUserRequest) (*models.User, error) {
	s.logger.Info("Creating user", "email", req.Email, "role", req.Role)

	if errs := s.validator.GetBusinessValidator().ValidateNewUser(req); len(errs) > 0 {
		return nil, NewValidationFailedError(errs)
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, NewBusinessRuleError("A user is already registered with the email: %s", req.Email)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     models.UserRole(req.Role),
		Password: hashed,
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created successfully", "user_id", user.ID)

	event := events.NewEvent(events.EventUserRegistered, events.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicUsers, event); err != nil {
		s.logger.Error("Failed to publish user event", "user_id", user.ID, "error", err)
	}

	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.UserListItem, error) {
	users, err := s.repo.User().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]models.UserListItem, 0, len(users))
	for _, user := range users {
		items = append(items, models.NewUserListItem(user))
	}
	return items, nil
}
