package postgres

import (
	"context"
	"fmt"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
	"github.com/Ahmedezz570/SkillSwap/pkg/database"
)

const messageColumns = `id, sender_id, receiver_id, content, sent_at`

// MessageRepository implements repository.MessageRepository using PostgreSQL.
type MessageRepository struct {
	pool database.DBTX
}

// NewMessageRepository creates a new PostgreSQL-backed message repository.
func NewMessageRepository(pool database.DBTX) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create appends a new message to the log.
func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, content, sent_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.SenderID,
		m.ReceiverID,
		m.Content,
		m.SentAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

// ListForUser returns every message the user sent or received, oldest first.
func (r *MessageRepository) ListForUser(ctx context.Context, userID string) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY sent_at, id`

	return r.queryMessages(ctx, query, userID)
}

// ListBetween returns the messages exchanged between two users, oldest first.
func (r *MessageRepository) ListBetween(ctx context.Context, userID, otherID string) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY sent_at, id`

	return r.queryMessages(ctx, query, userID, otherID)
}

func (r *MessageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(
			&m.ID,
			&m.SenderID,
			&m.ReceiverID,
			&m.Content,
			&m.SentAt,
		); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}

	return messages, nil
}
