package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ahmedezz570/SkillSwap/internal/domain"
	"github.com/Ahmedezz570/SkillSwap/internal/event"
	"github.com/Ahmedezz570/SkillSwap/internal/repository"
	"github.com/Ahmedezz570/SkillSwap/internal/service"
	"github.com/Ahmedezz570/SkillSwap/pkg/httputil"
	pkgkafka "github.com/Ahmedezz570/SkillSwap/pkg/kafka"
)

// --- Mock UserRepository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock MessageRepository ---

type mockMessageRepository struct {
	mock.Mock
}

func (m *mockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockMessageRepository) ListForUser(ctx context.Context, userID string) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockMessageRepository) ListBetween(ctx context.Context, userID, otherID string) ([]domain.Message, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

// --- Mock BookingRepository ---

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Booking), args.Int(1), args.Error(2)
}

func (m *mockBookingRepository) TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *mockBookingRepository) Complete(ctx context.Context, id, teacherID string) error {
	args := m.Called(ctx, id, teacherID)
	return args.Error(0)
}

// --- Mock RatingRepository ---

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *domain.Rating) (float64, error) {
	args := m.Called(ctx, rating)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockRatingRepository) ListForUser(ctx context.Context, rateeID string) ([]domain.Rating, error) {
	args := m.Called(ctx, rateeID)
	return args.Get(0).([]domain.Rating), args.Error(1)
}

// --- Mock MatchCache ---

type mockMatchCache struct {
	mock.Mock
}

func (m *mockMatchCache) Get(ctx context.Context, userID string) ([]domain.Match, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

func (m *mockMatchCache) Set(ctx context.Context, userID string, matches []domain.Match, ttl time.Duration) error {
	args := m.Called(ctx, userID, matches, ttl)
	return args.Error(0)
}

func (m *mockMatchCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Helpers ---

type testEnv struct {
	users    *mockUserRepository
	messages *mockMessageRepository
	bookings *mockBookingRepository
	ratings  *mockRatingRepository
	cache    *mockMatchCache
	router   *chi.Mux
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

// newTestEnv wires mock repositories behind real services and mounts the
// handlers on a chi router matching the production route layout.
func newTestEnv() *testEnv {
	env := &testEnv{
		users:    new(mockUserRepository),
		messages: new(mockMessageRepository),
		bookings: new(mockBookingRepository),
		ratings:  new(mockRatingRepository),
		cache:    new(mockMatchCache),
	}

	logger := testLogger()
	producer := testEventProducer()

	userService := service.NewUserService(env.users, env.cache, producer, logger)
	matchService := service.NewMatchService(env.users, env.cache, 5*time.Minute, logger)
	messageService := service.NewMessageService(env.messages, env.users, producer, logger)
	bookingService := service.NewBookingService(env.bookings, env.users, producer, nil, logger)
	ratingService := service.NewRatingService(env.ratings, env.bookings, env.users, producer, logger)

	userHandler := NewUserHandler(userService, ratingService, logger)
	matchHandler := NewMatchHandler(matchService, logger)
	messageHandler := NewMessageHandler(messageService, logger)
	bookingHandler := NewBookingHandler(bookingService, ratingService, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUser)
			r.Get("/", userHandler.ListUsers)
			r.Get("/{id}", userHandler.GetUser)
			r.Put("/{id}", userHandler.UpdateUser)
			r.Delete("/{id}", userHandler.DeleteUser)
			r.Get("/{id}/ratings", userHandler.ListUserRatings)
			r.Get("/{id}/matches", matchHandler.GetMatches)
			r.Get("/{id}/conversations", messageHandler.ListConversations)
			r.Get("/{id}/conversations/{otherID}", messageHandler.GetThread)
		})

		r.Post("/messages", messageHandler.SendMessage)

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/time-slots", bookingHandler.ListTimeSlots)
			r.Post("/", bookingHandler.CreateBooking)
			r.Get("/", bookingHandler.ListBookings)
			r.Get("/{id}", bookingHandler.GetBooking)
			r.Post("/{id}/confirm", bookingHandler.ConfirmBooking)
			r.Post("/{id}/complete", bookingHandler.CompleteBooking)
			r.Post("/{id}/rating", bookingHandler.SubmitRating)
		})
	})
	env.router = r

	return env
}

// decodeResponse reads the response body into the httputil.Response struct.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

// Well-known identifiers reused across tests.
const (
	studentID = "550e8400-e29b-41d4-a716-446655440001"
	teacherID = "550e8400-e29b-41d4-a716-446655440002"
	bookingID = "550e8400-e29b-41d4-a716-446655440010"
	missingID = "550e8400-e29b-41d4-a716-446655440099"
)

// sampleUser returns a realistic profile for use in test expectations.
func sampleUser() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:          studentID,
		DisplayName: "Ada",
		Email:       "ada@example.com",
		Bio:         "Compilers by day, gardening by night.",
		TeachSkills: []string{"Go", "SQL"},
		LearnSkills: []string{"Photography", "Sketching"},
		Rating:      4.5,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// sampleTeacher returns a second profile offering the Go skill.
func sampleTeacher() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:          teacherID,
		DisplayName: "Grace",
		Email:       "grace@example.com",
		TeachSkills: []string{"Go", "Photography"},
		LearnSkills: []string{"SQL"},
		Rating:      5.0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// sampleBooking returns a pending session between the two sample users.
func sampleBooking() *domain.Booking {
	now := time.Now().UTC()
	return &domain.Booking{
		ID:        bookingID,
		StudentID: studentID,
		TeacherID: teacherID,
		Skill:     "Photography",
		Date:      "2030-03-15",
		TimeSlot:  "10:00",
		Status:    domain.BookingStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
