package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dewoosin/paperly-sub000/config"
	"github.com/dewoosin/paperly-sub000/db"
	"github.com/dewoosin/paperly-sub000/internal/auth/cache"
	"github.com/dewoosin/paperly-sub000/internal/auth/domain"
	"github.com/dewoosin/paperly-sub000/internal/auth/handler"
	"github.com/dewoosin/paperly-sub000/internal/auth/mailer"
	repo "github.com/dewoosin/paperly-sub000/internal/auth/repository/postgres"
	"github.com/dewoosin/paperly-sub000/internal/auth/service"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	repository := repo.NewPostgresRepository(dbPool)

	// Redis is optional; without it the durable counter alone decides.
	var lockCache domain.LockoutCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		lockCache = cache.NewLockoutCache(redis.NewClient(opts))
	}

	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	userService := service.NewUserService(repository, repository, tokenService, hasher, lockCache, cfg)
	verificationService := service.NewVerificationService(repository, repository,
		mailer.NewLogMailer(), cfg.VerificationExpiryHours)
	authHandler := handler.NewAuthHandler(userService, verificationService, tokenService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
