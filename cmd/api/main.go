package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	commentDelivery "github.com/pravaah/backend/internal/domain/comments/delivery"
	commentRepository "github.com/pravaah/backend/internal/domain/comments/repository"
	commentUsecase "github.com/pravaah/backend/internal/domain/comments/usecase"
	likeDelivery "github.com/pravaah/backend/internal/domain/likes/delivery"
	likeRepository "github.com/pravaah/backend/internal/domain/likes/repository"
	likeUsecase "github.com/pravaah/backend/internal/domain/likes/usecase"
	playlistDelivery "github.com/pravaah/backend/internal/domain/playlists/delivery"
	playlistRepository "github.com/pravaah/backend/internal/domain/playlists/repository"
	playlistUsecase "github.com/pravaah/backend/internal/domain/playlists/usecase"
	tweetDelivery "github.com/pravaah/backend/internal/domain/tweets/delivery"
	tweetRepository "github.com/pravaah/backend/internal/domain/tweets/repository"
	tweetUsecase "github.com/pravaah/backend/internal/domain/tweets/usecase"
	"github.com/pravaah/backend/internal/domain/users/delivery"
	"github.com/pravaah/backend/internal/domain/users/repository"
	"github.com/pravaah/backend/internal/domain/users/usecase"
	videoDelivery "github.com/pravaah/backend/internal/domain/videos/delivery"
	videoRepository "github.com/pravaah/backend/internal/domain/videos/repository"
	videoUsecase "github.com/pravaah/backend/internal/domain/videos/usecase"
	"github.com/pravaah/backend/internal/platform/config"
	"github.com/pravaah/backend/internal/platform/database"
	"github.com/pravaah/backend/internal/platform/mailer"
	"github.com/pravaah/backend/internal/platform/storage"
	"github.com/pravaah/backend/internal/platform/views"
	"github.com/pravaah/backend/pkg/jwt"
	"github.com/pravaah/backend/pkg/middleware"
	customValidator "github.com/pravaah/backend/pkg/validator"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func main() {
	// Setup zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	zlog.Info().Msg("Starting Pravaah API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	accessExpiry, err := time.ParseDuration(cfg.JWT.AccessTokenExpiry)
	if err != nil {
		log.Fatalf("Invalid access token expiry: %v", err)
	}
	refreshExpiry, err := time.ParseDuration(cfg.JWT.RefreshTokenExpiry)
	if err != nil {
		log.Fatalf("Invalid refresh token expiry: %v", err)
	}

	// Initialize database
	db, err := database.InitMySQL(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MinIO
	minioClient, err := storage.InitMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}
	zlog.Info().Msg("MinIO initialized successfully")

	// Initialize Redis client
	redisAddr := cfg.Redis.Host + ":" + cfg.Redis.Port
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	zlog.Info().Msg("Redis initialized successfully")

	// Initialize services
	storageService := storage.NewStorageService(minioClient, cfg.MinIO.BucketMedia)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	// View counts accumulate in Redis and flush to MySQL in the background.
	viewCounter := views.NewCounter(redisClient, db, 30*time.Second)
	go viewCounter.Start(ctx)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = false

	// Register validator
	e.Validator = customValidator.New()

	// Initialize JWT service
	tokenService := jwt.NewTokenService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, accessExpiry, refreshExpiry)

	// Initialize repositories
	userRepo := repository.NewUser(db)
	videoRepo := videoRepository.NewVideo(db)
	commentRepo := commentRepository.NewComment(db)
	tweetRepo := tweetRepository.NewTweet(db)
	likeRepo := likeRepository.NewLike(db)
	playlistRepo := playlistRepository.NewPlaylist(db)

	// Initialize use cases
	userUsecase := usecase.NewUsecase(userRepo, tokenService, storageService, smtpMailer, cfg.App.ResetURLBase)
	videoUsecaseInstance := videoUsecase.NewUsecase(videoRepo, storageService, viewCounter, userRepo)
	commentUsecaseInstance := commentUsecase.NewUsecase(commentRepo, videoRepo)
	tweetUsecaseInstance := tweetUsecase.NewUsecase(tweetRepo)
	likeUsecaseInstance := likeUsecase.NewUsecase(likeRepo)
	playlistUsecaseInstance := playlistUsecase.NewUsecase(playlistRepo, videoRepo)

	// Initialize handlers
	userHandler := delivery.NewHandler(userUsecase, tokenService)
	videoHandler := videoDelivery.NewHandler(videoUsecaseInstance)
	commentHandler := commentDelivery.NewHandler(commentUsecaseInstance)
	tweetHandler := tweetDelivery.NewHandler(tweetUsecaseInstance)
	likeHandler := likeDelivery.NewHandler(likeUsecaseInstance)
	playlistHandler := playlistDelivery.NewHandler(playlistUsecaseInstance)

	// Per-IP limiter guards the credential-facing endpoints.
	loginLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	authMiddleware := middleware.VerifyRequest(tokenService, userRepo)

	// Setup routes
	setupRoutes(e, routeHandlers{
		users:     userHandler,
		videos:    videoHandler,
		comments:  commentHandler,
		tweets:    tweetHandler,
		likes:     likeHandler,
		playlists: playlistHandler,
	}, authMiddleware, loginLimiter, cfg.App.CORSOrigin)

	// Start server in goroutine
	go func() {
		port := cfg.Server.Port
		if port == "" {
			port = "8000"
		}

		zlog.Info().Str("port", port).Msg("Starting HTTP server")
		if err := e.Start(":" + port); err != nil {
			zlog.Info().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("Shutting down server...")
	cancel()

	// Gracefully shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	zlog.Info().Msg("Server exited successfully")
}
