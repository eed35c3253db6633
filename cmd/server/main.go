package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/Tornado2025-team03/eventpinmap-sub000/config"
	_ "github.com/Tornado2025-team03/eventpinmap-sub000/docs"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/adapters/auth"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/adapters/email"
	delivery "github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/controllers"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/middleware"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/realtime"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/repository/postgres"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/services"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/services/ai"
)

const serviceTimeout = 10 * time.Second

// @title EventPinMap API
// @version 1.0
// @description Map-pinned meetup backend with availability matching.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := config.NewLogger(cfg.Environment)

	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	logger.Info("connecting to postgres")
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("opening postgres: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("pinging postgres: %w", err)
	}

	logger.Info("running migrations")
	migrator, err := postgres.NewMigrator(cfg.DBUrl, "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return err
	}
	_ = migrator.Close()

	var changes domain.ChangePublisher = realtime.NoopPublisher{}
	if cfg.RedisAddr != "" {
		logger.Info("connecting to redis", "addr", cfg.RedisAddr)
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = redisClient.Close() }()
		changes = realtime.NewRedisPublisher(redisClient, realtime.DefaultChannel, logger)
	} else {
		logger.Warn("REDIS_ADDR not set, change fan-out disabled")
	}

	mailer := email.NewMailer(email.MailerConfig{
		Driver:      cfg.MailerDriver,
		FromAddress: cfg.MailerFromAddr,
		FromName:    cfg.MailerFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	}, logger)
	inviteRenderer, err := email.NewInviteRenderer()
	if err != nil {
		return fmt.Errorf("loading invite templates: %w", err)
	}
	emailService := services.NewEmailService(mailer, inviteRenderer, logger)

	eventRepo := postgres.NewEventRepository(db)
	memberRepo := postgres.NewEventMemberRepository(db)
	profileRepo := postgres.NewUserProfileRepository(db)
	tagRepo := postgres.NewEventTagRepository(db)
	announcementRepo := postgres.NewAnnouncementRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)

	eventService := services.NewEventService(eventRepo, memberRepo, profileRepo, tagRepo, announcementRepo, emailService, changes, logger, serviceTimeout)
	matchService := services.NewMatchService(eventRepo, availabilityRepo, profileRepo, memberRepo, time.Now, serviceTimeout)
	availabilityService := services.NewAvailabilityService(availabilityRepo, changes, logger, serviceTimeout)
	profileService := services.NewProfileService(profileRepo, serviceTimeout)

	aiClient := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if !aiClient.Configured() {
		logger.Warn("GEMINI_API_KEY not set, ai endpoints fall back to heuristics")
	}

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mux := delivery.NewRouter(delivery.Controllers{
		Event:        controllers.NewEventController(logger, eventService),
		Connect:      controllers.NewConnectController(logger, matchService),
		Availability: controllers.NewAvailabilityController(logger, availabilityService),
		Profile:      controllers.NewProfileController(logger, profileService),
		AI:           controllers.NewAIController(logger, ai.NewFiller(aiClient, logger), ai.NewTitler(aiClient, logger)),
	}, verifier)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.Logging(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
