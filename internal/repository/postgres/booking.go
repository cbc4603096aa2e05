package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
	"github.com/Ahmedezz570/SkillSwap/internal/repository"
	"github.com/Ahmedezz570/SkillSwap/pkg/database"
	apperrors "github.com/Ahmedezz570/SkillSwap/pkg/errors"
)

const bookingColumns = `id, student_id, teacher_id, skill, date, time_slot, status, created_at, updated_at`

// BookingRepository implements repository.BookingRepository using PostgreSQL.
type BookingRepository struct {
	pool database.DBTX
}

// NewBookingRepository creates a new PostgreSQL-backed booking repository.
func NewBookingRepository(pool database.DBTX) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Create inserts a new booking into the database.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, student_id, teacher_id, skill, date, time_slot, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.StudentID,
		b.TeacherID,
		b.Skill,
		b.Date,
		b.TimeSlot,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by its ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b domain.Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.StudentID,
		&b.TeacherID,
		&b.Skill,
		&b.Date,
		&b.TimeSlot,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return &b, nil
}

// List returns bookings matching the given filter with the total count.
func (r *BookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("(student_id = $%d OR teacher_id = $%d)", argIndex, argIndex))
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM bookings
		%s
		ORDER BY date, time_slot, id
		LIMIT $%d OFFSET $%d`,
		bookingColumns, whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var totalCount int
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID,
			&b.StudentID,
			&b.TeacherID,
			&b.Skill,
			&b.Date,
			&b.TimeSlot,
			&b.Status,
			&b.CreatedAt,
			&b.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, totalCount, nil
}

// TransitionStatus moves a booking between statuses with a compare-and-set
// guard, so concurrent transitions of the same booking serialize on the row
// and the loser gets ErrInvalidTransition.
func (r *BookingRepository) TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`

	ct, err := r.pool.Exec(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("transition booking status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, id)
	}

	return nil
}

// Complete transitions a booking to completed and increments the teacher's
// session counter atomically.
func (r *BookingRepository) Complete(ctx context.Context, id, teacherID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`,
		domain.BookingStatusCompleted, time.Now().UTC(), id, domain.BookingStatusConfirmed,
	)
	if err != nil {
		return fmt.Errorf("complete booking: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, id)
	}

	// The teacher row may have been deleted; the session counter is then
	// simply dropped along with the profile.
	_, err = tx.Exec(ctx, `
		UPDATE users
		SET sessions_completed = sessions_completed + 1, updated_at = $1
		WHERE id = $2`,
		time.Now().UTC(), teacherID,
	)
	if err != nil {
		return fmt.Errorf("increment sessions completed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// classifyMissedUpdate distinguishes a missing booking from one that exists
// in a different status after a compare-and-set update touched no rows.
func (r *BookingRepository) classifyMissedUpdate(ctx context.Context, id string) error {
	var current domain.BookingStatus
	err := r.pool.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("booking", id)
		}
		return fmt.Errorf("check booking status: %w", err)
	}

	return apperrors.InvalidTransition(fmt.Sprintf("booking %s is %s", id, current))
}
