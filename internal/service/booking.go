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

// BookingService implements the business logic for the booking lifecycle.
type BookingService struct {
	bookings  repository.BookingRepository
	users     repository.UserRepository
	producer  *event.Producer
	timeSlots []string
	logger    *slog.Logger
}

// NewBookingService creates a new booking service. timeSlots is the bookable
// schedule grid; pass domain.DefaultTimeSlots() unless overridden.
func NewBookingService(bookings repository.BookingRepository, users repository.UserRepository, producer *event.Producer, timeSlots []string, logger *slog.Logger) *BookingService {
	if len(timeSlots) == 0 {
		timeSlots = domain.DefaultTimeSlots()
	}
	return &BookingService{
		bookings:  bookings,
		users:     users,
		producer:  producer,
		timeSlots: timeSlots,
		logger:    logger,
	}
}

// TimeSlots returns the bookable schedule grid.
func (s *BookingService) TimeSlots() []string {
	return s.timeSlots
}

// CreateBookingInput holds the parameters for creating a booking.
type CreateBookingInput struct {
	StudentID string
	TeacherID string
	Skill     string
	Date      string
	TimeSlot  string
}

// CreateBooking creates a pending booking after validating the pairing: the
// teacher must actually teach the requested skill and the student must have
// listed it as one they want to learn.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.StudentID == input.TeacherID {
		return nil, apperrors.InvalidInput("cannot book a session with yourself")
	}
	if !domain.ValidBookingDate(input.Date) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("date must be in %s format", domain.DateLayout))
	}
	if domain.PastBookingDate(input.Date, time.Now()) {
		return nil, apperrors.InvalidInput("date must not be in the past")
	}
	if !domain.ValidTimeSlot(input.TimeSlot, s.timeSlots) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("time_slot %q is not offered", input.TimeSlot))
	}

	skill := domain.NormalizeSkill(input.Skill)
	if skill == "" {
		return nil, apperrors.InvalidInput("skill is required")
	}

	student, err := s.users.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if !student.Wants(skill) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%q is not in your learning list", skill))
	}

	teacher, err := s.users.GetByID(ctx, input.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if !teacher.Teaches(skill) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("teacher does not offer %q", skill))
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:        uuid.New().String(),
		StudentID: input.StudentID,
		TeacherID: input.TeacherID,
		Skill:     skill,
		Date:      input.Date,
		TimeSlot:  input.TimeSlot,
		Status:    domain.BookingStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.producer.PublishBookingCreated(ctx, booking); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish booking.created event",
			slog.String("booking_id", booking.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "booking created",
		slog.String("booking_id", booking.ID),
		slog.String("student_id", booking.StudentID),
		slog.String("teacher_id", booking.TeacherID),
		slog.String("skill", booking.Skill),
	)

	return booking, nil
}

// GetBooking retrieves a booking by its ID.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	return booking, nil
}

// ListBookings returns a filtered, paginated list of bookings.
func (s *BookingService) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	bookings, total, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, total, nil
}

// ConfirmBooking moves a pending booking to confirmed. The store-level
// compare-and-set means a concurrent second confirm loses and surfaces the
// conflict instead of silently succeeding.
func (s *BookingService) ConfirmBooking(ctx context.Context, id string) (*domain.Booking, error) {
	err := s.bookings.TransitionStatus(ctx, id, domain.BookingStatusPending, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("confirm booking: %w", err)
	}

	if err := s.producer.PublishBookingStatusChanged(ctx, id, domain.BookingStatusPending, domain.BookingStatusConfirmed); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish booking.status_changed event",
			slog.String("booking_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "booking confirmed",
		slog.String("booking_id", id),
	)

	return s.GetBooking(ctx, id)
}

// CompleteBooking moves a confirmed booking to completed and credits the
// teacher with a finished session.
func (s *BookingService) CompleteBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking for completion: %w", err)
	}

	if err := s.bookings.Complete(ctx, id, booking.TeacherID); err != nil {
		return nil, fmt.Errorf("complete booking: %w", err)
	}

	if err := s.producer.PublishBookingStatusChanged(ctx, id, domain.BookingStatusConfirmed, domain.BookingStatusCompleted); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish booking.status_changed event",
			slog.String("booking_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "booking completed",
		slog.String("booking_id", id),
		slog.String("teacher_id", booking.TeacherID),
	)

	booking.Status = domain.BookingStatusCompleted
	return booking, nil
}
