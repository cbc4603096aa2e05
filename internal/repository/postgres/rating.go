package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
	"github.com/Ahmedezz570/SkillSwap/pkg/database"
	apperrors "github.com/Ahmedezz570/SkillSwap/pkg/errors"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	pool database.DBTX
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(pool database.DBTX) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Create inserts the rating and folds its score into the ratee's aggregate in
// one transaction. The unique index on (booking_id, rater_id) rejects a second
// rating for the same booking, and the fold runs in SQL so concurrent ratings
// of the same ratee serialize on the user row.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) (float64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO ratings (id, booking_id, rater_id, ratee_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rating.ID,
		rating.BookingID,
		rating.RaterID,
		rating.RateeID,
		rating.Score,
		rating.Comment,
		rating.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.DuplicateRating(rating.BookingID)
		}
		return 0, fmt.Errorf("insert rating: %w", err)
	}

	var aggregate float64
	err = tx.QueryRow(ctx, `
		UPDATE users
		SET rating = (rating + $1) / 2, updated_at = $2
		WHERE id = $3
		RETURNING rating`,
		float64(rating.Score), time.Now().UTC(), rating.RateeID,
	).Scan(&aggregate)
	if err != nil {
		// Zero rows means the ratee's profile was deleted out from under the
		// booking.
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NotFound("user", rating.RateeID)
		}
		return 0, fmt.Errorf("fold rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return aggregate, nil
}

// ListForUser returns ratings received by a user, newest first.
func (r *RatingRepository) ListForUser(ctx context.Context, rateeID string) ([]domain.Rating, error) {
	query := `
		SELECT id, booking_id, rater_id, ratee_id, score, comment, created_at
		FROM ratings
		WHERE ratee_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, rateeID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]domain.Rating, 0)
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(
			&rt.ID,
			&rt.BookingID,
			&rt.RaterID,
			&rt.RateeID,
			&rt.Score,
			&rt.Comment,
			&rt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}
