package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"conversation-report/internal/access"
	"conversation-report/internal/config"
	"conversation-report/internal/db"
	myMiddleware "conversation-report/internal/middleware"
	"conversation-report/internal/report"
	"conversation-report/internal/user"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 1. Config & Flags
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ invalid configuration")
	}
	addr := flag.String("addr", cfg.Addr, "http service address")
	flag.Parse()
	logger = logger.Level(cfg.LogLevel)

	// 2. Connect to Database
	database, err := db.NewDatabase(cfg.DBDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ failed to connect to DB")
	}
	defer database.Close()
	logger.Info().Msg("✅ Connected to PostgreSQL")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal().Err(err).Msg("❌ migration failed")
	}
	logger.Info().Msg("✅ Database Schema Initialized")

	// 3. Connect to Redis (shared user cache)
	redisClient := connectRedis(&logger, cfg.RedisAddr, 3*time.Second)
	defer redisClient.Close()

	// 4. Users & authentication
	userRepo := user.NewRepository(database.Conn)
	userService := user.NewService(userRepo, cfg.JWTSecret)
	userHandler := user.NewHandler(userService, &logger)
	userLookup := user.NewCachedLookup(userRepo, user.NewRedisCache(redisClient), cfg.UserCacheTTL)

	// 5. Report
	reportController := report.NewController(
		report.NewRepository(database.Conn),
		userLookup,
		access.NewRepository(database.Conn),
		cfg.Location,
	)
	reportHandler := report.NewHandler(reportController, &logger)

	authMiddleware := myMiddleware.NewAuthMiddleware(userService, user.TokenCookie)

	// 6. Define Routes
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public Routes
	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Protected Routes (Require JWT)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Handle)
		r.Get(report.ReportPath, reportHandler.Report)
		r.Get(report.ProfilePath, userHandler.View)
		r.Get("/api/courses/{id}/navigation", reportHandler.CourseNavigation)
	})

	server := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("addr", *addr).Msg("🚀 Server starting")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// connectRedis never fails startup: user lookups fall back to the database
// while Redis is unreachable, so a failed ping is only a warning.
func connectRedis(logger *zerolog.Logger, addr string, timeout time.Duration) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("⚠️ Redis unreachable, user cache disabled until it recovers")
		return client
	}
	logger.Info().Str("addr", addr).Msg("✅ Connected to Redis")
	return client
}
