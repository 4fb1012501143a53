package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"conferenceplanner/config"
	_ "conferenceplanner/docs"
	"conferenceplanner/internal/adapters/auth"
	"conferenceplanner/internal/adapters/catalog"
	"conferenceplanner/internal/adapters/email"
	delivery "conferenceplanner/internal/delivery/http"
	"conferenceplanner/internal/delivery/http/controllers"
	"conferenceplanner/internal/metrics"
	"conferenceplanner/internal/repository/postgres"
	"conferenceplanner/internal/services"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const serviceTimeout = 5 * time.Second

// @title Conference Planner API
// @version 1.0
// @description Attendee registration and personal agenda service for a conference. Session and speaker data comes from the upstream session catalog.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	if cfg.JWTSecret == "" {
		if cfg.Environment == "production" {
			logger.Error("JWT_SECRET is required in production")
			os.Exit(1)
		}
		logger.Warn("JWT_SECRET not set, using development default")
		cfg.JWTSecret = "dev-secret-do-not-use-in-production"
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), serviceTimeout)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	attendeeRepo := postgres.NewAttendeeRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Adapters
	sessionCatalog := catalog.NewHTTPCatalog(cfg.CatalogURL, &http.Client{Timeout: 10 * time.Second})
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	directoryService := services.NewDirectoryService(attendeeRepo, emailService, logger)
	agendaService := services.NewAgendaService(attendeeRepo, sessionCatalog, serviceTimeout)
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry)

	m := metrics.New()

	// Controllers
	authController := controllers.NewAuthController(logger, authService, cfg.JWTExpiry)
	attendeeController := controllers.NewAttendeeController(logger, directoryService, agendaService, m)
	scheduleController := controllers.NewScheduleController(logger, sessionCatalog, agendaService)
	speakerController := controllers.NewSpeakerController(logger, sessionCatalog)
	healthController := controllers.NewHealthController(logger, db)

	mux := delivery.NewRouter(authController, attendeeController, scheduleController, speakerController, healthController)
	handler := delivery.NewHandler(mux, logger, tokenVerifier, directoryService, m, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
}
