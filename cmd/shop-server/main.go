package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"storefront/database"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.Connect(cfg, logger,
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.SeedAdmin(db, logger); err != nil {
		logger.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	// Sessions: redis when configured, in-process memory otherwise
	var store session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisURL, cfg.RedisPassword, cfg.SessionTTL)
		if err != nil {
			logger.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		store = redisStore
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
	}
	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authService := service.NewAuthService(userRepo)
	cartService := service.NewCartService(productRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	orderService := service.NewOrderService(orderRepo)
	adminService := service.NewAdminService(models.NewShopRegistry(), db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.Session(sessions))

	loginLimit := middleware.RateLimit(cfg.LoginRatePerMin, cfg.LoginRateBurst)
	handler.NewAuthHandler(authService, sessions).RegisterRoutes(r, loginLimit)
	handler.NewCatalogHandler(productRepo, reviewService).RegisterRoutes(r)
	handler.NewCartHandler(cartService, orderService).RegisterRoutes(r)
	handler.NewAdminHandler(adminService).RegisterRoutes(r, authService)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("shop server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
