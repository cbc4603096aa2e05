package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
	"github.com/Ahmedezz570/SkillSwap/internal/event"
	"github.com/Ahmedezz570/SkillSwap/internal/repository"
	apperrors "github.com/Ahmedezz570/SkillSwap/pkg/errors"
)

// RatingService implements the business logic for session ratings.
type RatingService struct {
	ratings  repository.RatingRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(ratings repository.RatingRepository, bookings repository.BookingRepository, users repository.UserRepository, producer *event.Producer, logger *slog.Logger) *RatingService {
	return &RatingService{
		ratings:  ratings,
		bookings: bookings,
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

// SubmitRatingInput holds the parameters for submitting a rating.
type SubmitRatingInput struct {
	BookingID string
	RaterID   string
	Score     int
	Comment   string
}

// SubmitRating records the student's score for a completed booking, folds it
// into the teacher's aggregate, and returns the updated teacher profile.
// Only the booking's student may rate, each booking accepts one rating, and
// the booking must be completed first.
func (s *RatingService) SubmitRating(ctx context.Context, input SubmitRatingInput) (*domain.User, error) {
	if !domain.ValidRatingScore(input.Score) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("score must be between %d and %d", domain.MinRatingScore, domain.MaxRatingScore))
	}

	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking for rating: %w", err)
	}

	if booking.StudentID != input.RaterID {
		return nil, apperrors.Forbidden("only the booking's student may rate the session")
	}
	if !booking.IsRatable() {
		return nil, apperrors.InvalidTransition(fmt.Sprintf("booking %s is %s, not completed", booking.ID, booking.Status))
	}

	// Read the teacher before writing so a committed fold never has to be
	// reported as a failure.
	teacher, err := s.users.GetByID(ctx, booking.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("get rated teacher: %w", err)
	}

	rating := &domain.Rating{
		ID:        uuid.New().String(),
		BookingID: booking.ID,
		RaterID:   input.RaterID,
		RateeID:   booking.TeacherID,
		Score:     input.Score,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	aggregate, err := s.ratings.Create(ctx, rating)
	if err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}

	if err := s.producer.PublishRatingSubmitted(ctx, rating, aggregate); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish rating.submitted event",
			slog.String("rating_id", rating.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "rating submitted",
		slog.String("rating_id", rating.ID),
		slog.String("booking_id", rating.BookingID),
		slog.String("ratee_id", rating.RateeID),
		slog.Int("score", rating.Score),
		slog.Float64("new_aggregate", aggregate),
	)

	teacher.Rating = aggregate
	return teacher, nil
}

// ListRatings returns the ratings a user has received, newest first.
func (s *RatingService) ListRatings(ctx context.Context, rateeID string) ([]domain.Rating, error) {
	ratings, err := s.ratings.ListForUser(ctx, rateeID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}
