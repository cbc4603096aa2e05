package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ahmedezz570/SkillSwap/internal/service"
	"github.com/Ahmedezz570/SkillSwap/pkg/health"
	"github.com/Ahmedezz570/SkillSwap/pkg/middleware"
)

// Services groups the service dependencies the router needs.
type Services struct {
	Users    *service.UserService
	Matches  *service.MatchService
	Messages *service.MessageService
	Bookings *service.BookingService
	Ratings  *service.RatingService
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(
	services Services,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsCfg middleware.CORSConfig,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(corsCfg))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("skillswap"))
	r.Use(middleware.Tracing("skillswap"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	userHandler := NewUserHandler(services.Users, services.Ratings, logger)
	matchHandler := NewMatchHandler(services.Matches, logger)
	messageHandler := NewMessageHandler(services.Messages, logger)
	bookingHandler := NewBookingHandler(services.Bookings, services.Ratings, logger)

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

	return r
}
