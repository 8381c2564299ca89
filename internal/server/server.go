// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"steamfinder/internal/cache"
	"steamfinder/internal/config"
	"steamfinder/internal/database"
	"steamfinder/internal/middleware"
	"steamfinder/internal/models"
	"steamfinder/internal/repository"
	"steamfinder/internal/service"
	"steamfinder/internal/steam"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo        repository.UserRepository
	friendRepo      repository.FriendRepository
	gameRepo        repository.GameRepository
	messageRepo     repository.MessageRepository
	groupRepo       repository.GroupRepository
	tournamentRepo  repository.TournamentRepository
	statsRepo       repository.StatsRepository
	eventRepo       repository.EventRepository
	reviewRepo      repository.ReviewRepository
	achievementRepo repository.AchievementRepository

	userService       *service.UserService
	friendService     *service.FriendService
	messageService    *service.MessageService
	groupService      *service.GroupService
	tournamentService *service.TournamentService
	statsService      *service.StatsService
	eventService      *service.EventService
	reviewService     *service.ReviewService

	steamClient *steam.Client
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  middleware.InitMetrics("steamfinder-api"),
		userRepo:        repository.NewUserRepository(db),
		friendRepo:      repository.NewFriendRepository(db),
		gameRepo:        repository.NewGameRepository(db),
		messageRepo:     repository.NewMessageRepository(db),
		groupRepo:       repository.NewGroupRepository(db),
		tournamentRepo:  repository.NewTournamentRepository(db),
		statsRepo:       repository.NewStatsRepository(db),
		eventRepo:       repository.NewEventRepository(db),
		reviewRepo:      repository.NewReviewRepository(db),
		achievementRepo: repository.NewAchievementRepository(db),
		steamClient:     steam.NewClient(cfg.SteamRealm, cfg.SteamReturnURL),
	}

	server.userService = service.NewUserService(server.userRepo, server.gameRepo)
	server.friendService = service.NewFriendService(server.friendRepo, server.userRepo)
	server.messageService = service.NewMessageService(server.messageRepo, server.userRepo, server.groupRepo)
	server.groupService = service.NewGroupService(server.groupRepo, server.userRepo)
	server.tournamentService = service.NewTournamentService(server.tournamentRepo, server.userRepo, server.gameRepo)
	server.statsService = service.NewStatsService(server.statsRepo, server.achievementRepo, nil)
	server.eventService = service.NewEventService(server.eventRepo, server.userRepo)
	server.reviewService = service.NewReviewService(server.reviewRepo, server.userRepo)

	return server, nil
}

// Services exposes the server's service layer for background job wiring.
func (s *Server) Services() (*service.MessageService, *service.TournamentService, *service.StatsService) {
	return s.messageService, s.tournamentService, s.statsService
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/steam", s.SteamLogin)
	auth.Get("/steam/callback", s.SteamCallback)

	// Public search
	api.Get("/players/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "player_search"), s.SearchPlayers)
	api.Get("/games/search", middleware.RateLimit(
		s.redis, 20, time.Minute, "game_search"), s.SearchGames)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// User routes
	users := protected.Group("/users")
	users.Get("/", s.GetUsers)
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Post("/me/steam", s.LinkSteamProfile)
	users.Post("/me/games", s.AddGame)
	// Specific /:id/:resource routes BEFORE generic /:id route
	users.Get("/:id/stats", s.GetUserStats)
	users.Get("/:id/achievements", s.GetUserAchievements)
	users.Post("/:id/reviews", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_review"), s.CreateReview)
	users.Get("/:id/reviews", s.GetUserReviews)
	users.Get("/:id", s.GetUserProfile)

	// Friend routes
	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	// Specific /requests routes before generic /:userId
	friends.Post("/requests/:userId", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "friend_request"), s.SendFriendRequest)
	friends.Get("/requests", s.GetPendingRequests)
	friends.Get("/requests/sent", s.GetSentRequests)
	friends.Post("/requests/:requestId/accept", s.AcceptFriendRequest)
	friends.Post("/requests/:userId/decline", s.DeclineFriendRequest)
	friends.Get("/status/:userId", s.GetFriendshipStatus)

	// Message routes
	messages := protected.Group("/messages")
	messages.Post("/", middleware.RateLimit(
		s.redis, 15, time.Minute, "send_message"), s.SendMessage)
	messages.Get("/", s.GetInbox)
	messages.Get("/conversation/:userId", s.GetConversation)
	messages.Post("/:id/read", s.MarkMessageRead)
	messages.Put("/:id", s.EditMessage)

	// Group routes
	groups := protected.Group("/groups")
	groups.Post("/", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "create_group"), s.CreateGroup)
	groups.Get("/", s.GetGroups)
	groups.Post("/:id/join", s.JoinGroup)
	groups.Get("/:id/members", s.GetGroupMembers)
	groups.Get("/:id", s.GetGroup)

	// Event routes
	events := protected.Group("/events")
	events.Post("/", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "create_event"), s.CreateEvent)
	events.Get("/", s.GetEvents)
	events.Post("/:id/join", s.JoinEvent)
	events.Get("/:id/participants", s.GetEventParticipants)
	events.Get("/:id", s.GetEvent)

	// Tournament routes
	tournaments := protected.Group("/tournaments")
	tournaments.Post("/", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "create_tournament"), s.CreateTournament)
	tournaments.Get("/", s.GetTournaments)
	tournaments.Post("/:id/join", s.JoinTournament)
	tournaments.Get("/:id/roster", s.GetTournamentRoster)
	tournaments.Get("/:id", s.GetTournament)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Steam Finder API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.Context(), "unhandled route error",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.String("error", err.Error()),
			)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Warn("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Warn("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Warn("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
