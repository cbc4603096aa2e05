package service

import (
	"context"
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

// MessageService implements the business logic for messaging. Messages are
// an append-only log; conversations are derived views over it.
type MessageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewMessageService creates a new message service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, producer *event.Producer, logger *slog.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

// SendMessageInput holds the parameters for sending a message.
type SendMessageInput struct {
	SenderID   string
	ReceiverID string
	Content    string
}

// SendMessage appends a message to the log between two distinct users.
func (s *MessageService) SendMessage(ctx context.Context, input SendMessageInput) (*domain.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperrors.InvalidInput("content is required")
	}
	if input.SenderID == input.ReceiverID {
		return nil, apperrors.InvalidInput("cannot send a message to yourself")
	}

	if _, err := s.users.GetByID(ctx, input.SenderID); err != nil {
		return nil, fmt.Errorf("get sender: %w", err)
	}
	if _, err := s.users.GetByID(ctx, input.ReceiverID); err != nil {
		return nil, fmt.Errorf("get receiver: %w", err)
	}

	message := &domain.Message{
		ID:         uuid.New().String(),
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Content:    content,
		SentAt:     time.Now().UTC(),
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if err := s.producer.PublishMessageSent(ctx, message); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish message.sent event",
			slog.String("message_id", message.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "message sent",
		slog.String("message_id", message.ID),
		slog.String("sender_id", message.SenderID),
		slog.String("receiver_id", message.ReceiverID),
	)

	return message, nil
}

// ListConversations returns the user's threads, one per counterpart, ordered
// by most recent activity. Counterparts whose profiles were deleted still
// appear; their messages outlive the profile.
func (s *MessageService) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	messages, err := s.messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return domain.GroupConversations(userID, messages), nil
}

// GetThread returns the messages between two users, oldest first.
func (s *MessageService) GetThread(ctx context.Context, userID, otherID string) ([]domain.Message, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	messages, err := s.messages.ListBetween(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}

	return messages, nil
}
