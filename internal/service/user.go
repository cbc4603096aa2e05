package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
	"github.com/Ahmedezz570/SkillSwap/internal/event"
	"github.com/Ahmedezz570/SkillSwap/internal/repository"
	apperrors "github.com/Ahmedezz570/SkillSwap/pkg/errors"
)

// UserService implements the business logic for user profile operations.
type UserService struct {
	repo     repository.UserRepository
	cache    repository.MatchCache
	producer *event.Producer
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, cache repository.MatchCache, producer *event.Producer, logger *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

// CreateUserInput holds the parameters for creating a user profile.
type CreateUserInput struct {
	DisplayName string
	Email       string
	Bio         string
	TeachSkills []string
	LearnSkills []string
}

// UpdateUserInput holds the parameters for updating a user profile. Nil
// fields are left unchanged.
type UpdateUserInput struct {
	DisplayName *string
	Bio         *string
	TeachSkills []string
	LearnSkills []string
}

// CreateUser creates a new user profile from the given input. Emails are
// unique; the pre-check here gives a clean conflict answer and the database
// constraint catches the concurrent-insert race.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.DisplayName) == "" {
		return nil, apperrors.InvalidInput("display_name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.AlreadyExists("user", "email", email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:          uuid.New().String(),
		DisplayName: strings.TrimSpace(input.DisplayName),
		Email:       email,
		Bio:         input.Bio,
		TeachSkills: domain.NormalizeSkillList(input.TeachSkills),
		LearnSkills: domain.NormalizeSkillList(input.LearnSkills),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.producer.PublishUserUpdated(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.updated event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// ListUsers returns a filtered, paginated list of users.
func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

// UpdateUser applies profile changes and drops the user's cached matches,
// since edited skill lists change what the scorer would return.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user for update: %w", err)
	}

	if input.DisplayName != nil {
		if strings.TrimSpace(*input.DisplayName) == "" {
			return nil, apperrors.InvalidInput("display_name cannot be empty")
		}
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.TeachSkills != nil {
		user.TeachSkills = domain.NormalizeSkillList(input.TeachSkills)
	}
	if input.LearnSkills != nil {
		user.LearnSkills = domain.NormalizeSkillList(input.LearnSkills)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate match cache",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishUserUpdated(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.updated event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user updated",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// DeleteUser removes a user profile. Messages and bookings referencing the
// user remain readable; the counterpart side simply loses the live profile.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate match cache",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishUserDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.deleted event",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user deleted",
		slog.String("user_id", id),
	)

	return nil
}
