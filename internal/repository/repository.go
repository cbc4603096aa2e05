package repository

import (
	"context"
	"time"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
)

// UserFilter defines filter criteria for listing users.
type UserFilter struct {
	// Skill narrows to users teaching the given skill (normalized match).
	Skill   *string
	Name    *string
	Page    int
	PerPage int
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user profile.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns users matching the given filter along with the total count.
	List(ctx context.Context, filter UserFilter) ([]domain.User, int, error)

	// ListAll returns every user profile. Used by the match scorer, which
	// ranks against the full directory.
	ListAll(ctx context.Context) ([]domain.User, error)

	// Update persists profile changes (display name, bio, skill lists).
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. Messages and bookings referencing the user are
	// left in place.
	Delete(ctx context.Context, id string) error
}

// MessageRepository defines the interface for message persistence operations.
// Messages are append-only; there is no update or delete.
type MessageRepository interface {
	// Create appends a new message to the log.
	Create(ctx context.Context, message *domain.Message) error

	// ListForUser returns every message the user sent or received, ordered
	// by sent time ascending.
	ListForUser(ctx context.Context, userID string) ([]domain.Message, error)

	// ListBetween returns the messages exchanged between two users, ordered
	// by sent time ascending.
	ListBetween(ctx context.Context, userID, otherID string) ([]domain.Message, error)
}

// BookingFilter defines filter criteria for listing bookings.
type BookingFilter struct {
	// UserID matches bookings where the user is either the student or the
	// teacher.
	UserID  *string
	Status  *domain.BookingStatus
	Page    int
	PerPage int
}

// BookingRepository defines the interface for booking persistence operations.
type BookingRepository interface {
	// Create inserts a new booking in the pending state.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// List returns bookings matching the given filter along with the total
	// count.
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, int, error)

	// TransitionStatus moves a booking from one status to another with a
	// compare-and-set guard. It returns ErrNotFound when no booking has the
	// id, and ErrInvalidTransition when the booking exists but is not in the
	// expected source status.
	TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus) error

	// Complete transitions a booking to completed and increments the
	// teacher's session counter in the same transaction.
	Complete(ctx context.Context, id, teacherID string) error
}

// RatingRepository defines the interface for rating persistence operations.
type RatingRepository interface {
	// Create inserts the rating and folds its score into the ratee's
	// aggregate in one transaction, returning the new aggregate. It returns
	// ErrDuplicateRating when the booking already has a rating from the
	// same rater.
	Create(ctx context.Context, rating *domain.Rating) (float64, error)

	// ListForUser returns ratings received by a user, newest first.
	ListForUser(ctx context.Context, rateeID string) ([]domain.Rating, error)
}

// MatchCache caches ranked match lists per requesting user.
type MatchCache interface {
	// Get returns the cached matches for a user, or ErrNotFound on a miss.
	Get(ctx context.Context, userID string) ([]domain.Match, error)

	// Set stores the ranked matches for a user with the given TTL.
	Set(ctx context.Context, userID string, matches []domain.Match, ttl time.Duration) error

	// Invalidate drops the cached matches for a user.
	Invalidate(ctx context.Context, userID string) error
}
