package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alurafake/course-service/internal/auth"
	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
	"github.com/alurafake/course-service/internal/validator"
)

type authService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	tokenManager *auth.TokenManager
	hasher       *auth.PasswordHasher
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, tokenManager *auth.TokenManager, hasher *auth.PasswordHasher) AuthService {
	return &authService{
		repo:         repo,
		logger:       logger,
		validator:    v,
		tokenManager: tokenManager,
		hasher:       hasher,
	}
}

// Login response never distinguishes an unknown email from a wrong password.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error) {
	if errs := s.validator.GetBusinessValidator().ValidateLogin(req); len(errs) > 0 {
		return nil, NewValidationFailedError(errs)
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.logger.Info("Login rejected for unknown email", "email", req.Email)
			return nil, NewAuthenticationFailedError()
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Compare(user.Password, req.Password) {
		s.logger.Info("Login rejected for wrong password", "email", req.Email)
		return nil, NewAuthenticationFailedError()
	}

	token, err := s.tokenManager.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", "email", user.Email, "role", user.Role)
	return &models.LoginResponse{JWTToken: token}, nil
}
