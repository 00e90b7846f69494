package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alurafake/course-service/internal/auth"
	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
)

// Seeder populates development and test databases with the default users
// and one course.
type Seeder struct {
	repo   repositories.Repository
	hasher *auth.PasswordHasher
	logger *slog.Logger
}

func NewSeeder(repo repositories.Repository, hasher *auth.PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Run inserts the default data. Running twice is a no-op.
func (s *Seeder) Run(ctx context.Context) error {
	exists, err := s.repo.User().ExistsByEmail(ctx, nil, "caio@alura.com.br")
	if err != nil {
		return fmt.Errorf("failed to check seed data: %w", err)
	}
	if exists {
		s.logger.Info("Seed data already present, skipping")
		return nil
	}

	caio, err := s.seedUser(ctx, "Caio", "caio@alura.com.br", models.RoleStudent, "senha123")
	if err != nil {
		return err
	}

	paulo, err := s.seedUser(ctx, "Paulo", "paulo@alura.com.br", models.RoleInstructor, "senha321")
	if err != nil {
		return err
	}

	course := &models.Course{
		Title:        "Java",
		Description:  "Aprenda Java com Alura",
		InstructorID: paulo.ID,
		Status:       models.StatusBuilding,
	}
	if err := s.repo.Course().Create(ctx, nil, course); err != nil {
		return fmt.Errorf("failed to seed course: %w", err)
	}

	s.logger.Info("Seed data created",
		"users", []string{caio.Email, paulo.Email},
		"course", course.Title)

	return nil
}

func (s *Seeder) seedUser(ctx context.Context, name, email string, role models.UserRole, password string) (*models.User, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: hashed,
	}
	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return user, nil
}
