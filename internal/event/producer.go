package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
	pkgkafka "github.com/Ahmedezz570/SkillSwap/pkg/kafka"
)

// Kafka topic constants for domain events.
const (
	TopicUserUpdated          = "skillswap.user.updated"
	TopicUserDeleted          = "skillswap.user.deleted"
	TopicMessageSent          = "skillswap.message.sent"
	TopicBookingCreated       = "skillswap.booking.created"
	TopicBookingStatusChanged = "skillswap.booking.status_changed"
	TopicRatingSubmitted      = "skillswap.rating.submitted"
)

// Aggregate type constants.
const (
	AggregateTypeUser    = "user"
	AggregateTypeMessage = "message"
	AggregateTypeBooking = "booking"
	AggregateTypeRating  = "rating"
)

// Source identifier for events originating from this service.
const Source = "skillswap-api"

// UserUpdatedData is the payload for a user.updated event. It carries the
// skill lists so downstream consumers can refresh match indexes.
type UserUpdatedData struct {
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	TeachSkills []string `json:"teach_skills"`
	LearnSkills []string `json:"learn_skills"`
}

// UserDeletedData is the payload for a user.deleted event.
type UserDeletedData struct {
	UserID string `json:"user_id"`
}

// MessageSentData is the payload for a message.sent event.
type MessageSentData struct {
	MessageID  string `json:"message_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
}

// BookingCreatedData is the payload for a booking.created event.
type BookingCreatedData struct {
	BookingID string `json:"booking_id"`
	StudentID string `json:"student_id"`
	TeacherID string `json:"teacher_id"`
	Skill     string `json:"skill"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
}

// BookingStatusChangedData is the payload for a booking.status_changed event.
type BookingStatusChangedData struct {
	BookingID string `json:"booking_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// RatingSubmittedData is the payload for a rating.submitted event.
type RatingSubmittedData struct {
	RatingID     string  `json:"rating_id"`
	BookingID    string  `json:"booking_id"`
	RaterID      string  `json:"rater_id"`
	RateeID      string  `json:"ratee_id"`
	Score        int     `json:"score"`
	NewAggregate float64 `json:"new_aggregate"`
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserUpdated publishes a user.updated event with the current skill lists.
func (p *Producer) PublishUserUpdated(ctx context.Context, user *domain.User) error {
	data := UserUpdatedData{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		TeachSkills: user.TeachSkills,
		LearnSkills: user.LearnSkills,
	}

	event, err := pkgkafka.NewEvent(TopicUserUpdated, user.ID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserUpdated, event); err != nil {
		return fmt.Errorf("publish user.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.updated event",
		slog.String("user_id", user.ID),
	)

	return nil
}

// PublishUserDeleted publishes a user.deleted event.
func (p *Producer) PublishUserDeleted(ctx context.Context, userID string) error {
	data := UserDeletedData{UserID: userID}

	event, err := pkgkafka.NewEvent(TopicUserDeleted, userID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserDeleted, event); err != nil {
		return fmt.Errorf("publish user.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.deleted event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishMessageSent publishes a message.sent event.
func (p *Producer) PublishMessageSent(ctx context.Context, message *domain.Message) error {
	data := MessageSentData{
		MessageID:  message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
	}

	event, err := pkgkafka.NewEvent(TopicMessageSent, message.ID, AggregateTypeMessage, Source, data)
	if err != nil {
		return fmt.Errorf("create message.sent event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicMessageSent, event); err != nil {
		return fmt.Errorf("publish message.sent event: %w", err)
	}

	p.logger.DebugContext(ctx, "published message.sent event",
		slog.String("message_id", message.ID),
		slog.String("sender_id", message.SenderID),
		slog.String("receiver_id", message.ReceiverID),
	)

	return nil
}

// PublishBookingCreated publishes a booking.created event.
func (p *Producer) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	data := BookingCreatedData{
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		TeacherID: booking.TeacherID,
		Skill:     booking.Skill,
		Date:      booking.Date,
		TimeSlot:  booking.TimeSlot,
	}

	event, err := pkgkafka.NewEvent(TopicBookingCreated, booking.ID, AggregateTypeBooking, Source, data)
	if err != nil {
		return fmt.Errorf("create booking.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicBookingCreated, event); err != nil {
		return fmt.Errorf("publish booking.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published booking.created event",
		slog.String("booking_id", booking.ID),
		slog.String("student_id", booking.StudentID),
		slog.String("teacher_id", booking.TeacherID),
	)

	return nil
}

// PublishBookingStatusChanged publishes a booking.status_changed event.
func (p *Producer) PublishBookingStatusChanged(ctx context.Context, bookingID string, oldStatus, newStatus domain.BookingStatus) error {
	data := BookingStatusChangedData{
		BookingID: bookingID,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
	}

	event, err := pkgkafka.NewEvent(TopicBookingStatusChanged, bookingID, AggregateTypeBooking, Source, data)
	if err != nil {
		return fmt.Errorf("create booking.status_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicBookingStatusChanged, event); err != nil {
		return fmt.Errorf("publish booking.status_changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published booking.status_changed event",
		slog.String("booking_id", bookingID),
		slog.String("old_status", string(oldStatus)),
		slog.String("new_status", string(newStatus)),
	)

	return nil
}

// PublishRatingSubmitted publishes a rating.submitted event with the folded aggregate.
func (p *Producer) PublishRatingSubmitted(ctx context.Context, rating *domain.Rating, newAggregate float64) error {
	data := RatingSubmittedData{
		RatingID:     rating.ID,
		BookingID:    rating.BookingID,
		RaterID:      rating.RaterID,
		RateeID:      rating.RateeID,
		Score:        rating.Score,
		NewAggregate: newAggregate,
	}

	event, err := pkgkafka.NewEvent(TopicRatingSubmitted, rating.ID, AggregateTypeRating, Source, data)
	if err != nil {
		return fmt.Errorf("create rating.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRatingSubmitted, event); err != nil {
		return fmt.Errorf("publish rating.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published rating.submitted event",
		slog.String("rating_id", rating.ID),
		slog.String("booking_id", rating.BookingID),
		slog.String("ratee_id", rating.RateeID),
	)

	return nil
}
