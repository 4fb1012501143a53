package http

import (
	"log/slog"
	"net/http"

	"conferenceplanner/internal/delivery/http/controllers"
	"conferenceplanner/internal/delivery/http/middleware"
	"conferenceplanner/internal/domain"
	"conferenceplanner/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// WelcomePath is where the registration gate sends authenticated users who
// have not registered as attendees yet.
const WelcomePath = "/welcome"

// DefaultExemptRoutes lists the paths reachable before attendee registration:
// the welcome flow itself, auth, and operational endpoints.
func DefaultExemptRoutes() *middleware.ExemptRoutes {
	return middleware.NewExemptRoutes(
		WelcomePath,
		"/auth/signup",
		"/auth/signin",
		"/auth/signout",
		"/attendees/me",
		"/healthz",
		"/metrics",
		"/swagger/",
	)
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	authController *controllers.AuthController,
	attendeeController *controllers.AttendeeController,
	scheduleController *controllers.ScheduleController,
	speakerController *controllers.SpeakerController,
	healthController *controllers.HealthController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/signin", authController.SignIn)
	mux.HandleFunc("POST /auth/signout", authController.SignOut)

	// Registration
	mux.HandleFunc("GET /welcome", attendeeController.Welcome)
	mux.HandleFunc("POST /welcome", attendeeController.Register)
	mux.HandleFunc("GET /attendees/me", attendeeController.GetMe)

	// Schedule
	mux.HandleFunc("GET /sessions", scheduleController.ListSessions)
	mux.HandleFunc("GET /sessions/{sessionID}", scheduleController.GetSession)
	mux.HandleFunc("GET /search", scheduleController.Search)

	// Speakers
	mux.HandleFunc("GET /speakers", speakerController.ListSpeakers)
	mux.HandleFunc("GET /speakers/{speakerID}", speakerController.GetSpeaker)

	// Agenda
	mux.HandleFunc("GET /agenda", scheduleController.MyAgenda)
	mux.HandleFunc("POST /agenda/sessions/{sessionID}", attendeeController.AddToAgenda)
	mux.HandleFunc("DELETE /agenda/sessions/{sessionID}", attendeeController.RemoveFromAgenda)

	// Operational
	mux.HandleFunc("GET /healthz", healthController.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router in the application middleware. Order matters:
// the request ID must exist before logging, and identity must be resolved
// before the registration gate runs.
func NewHandler(
	mux *http.ServeMux,
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	directory domain.DirectoryService,
	m *metrics.Metrics,
	allowedOrigins []string,
) http.Handler {
	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Metrics(m),
		middleware.CORS(allowedOrigins),
		middleware.WithIdentity(verifier, logger),
		middleware.RequireRegistration(directory, DefaultExemptRoutes(), WelcomePath, logger),
	)
}
