package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/analytics"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/auth"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/cache"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/config"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/db"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/favorite"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/logging"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/order"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/review"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/router"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/storage"
)

func main() {
	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		// slog is not configured yet
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fatal("Database connection failed", err)
	}
	defer pool.Close()

	if err := db.InitSchema(ctx, pool); err != nil {
		fatal("Schema init failed", err)
	}

	// ───────────────────────── CACHE ─────────────────────────
	rdb := setupRedis(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}
	var summaries review.SummaryStore
	if rdb != nil {
		summaries = cache.NewSummaryCache(rdb, cfg.SummaryCacheTTL)
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var audio review.Storage
	if cfg.StorageEnabled() {
		r2, err := storage.NewR2Client(ctx, storage.R2Config{
			Endpoint:      cfg.R2Endpoint,
			AccessKey:     cfg.R2AccessKey,
			SecretKey:     cfg.R2SecretKey,
			Bucket:        cfg.R2Bucket,
			PublicBaseURL: cfg.R2PublicBaseURL,
		})
		if err != nil {
			fatal("R2 init failed", err)
		}
		audio = r2
	} else {
		slog.Info("R2 not configured, voice review audio will not be stored")
	}

	// ───────────────────────── SERVICES ─────────────────────────
	clock := clockwork.NewRealClock()
	tokens := auth.NewTokenManager(cfg.JWTSecret, clock)

	authService := auth.NewService(auth.NewPostgresUserRepository(pool), tokens)
	foodService := food.NewService(food.NewPostgresRepository(pool), clock)
	reviewService := review.NewService(review.NewPostgresRepository(pool), foodService, audio, summaries, clock)
	orderService := order.NewService(order.NewPostgresRepository(pool), foodService, clock)
	favoriteService := favorite.NewService(favorite.NewPostgresRepository(pool), foodService)
	analyticsService := analytics.NewService(reviewService, foodService, orderService, authService)

	// ───────────────────────── ROUTER ─────────────────────────
	engine := router.NewRouter(router.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Clock:          clock,
	}, router.Deps{
		Tokens:    tokens,
		Auth:      auth.NewHandler(authService),
		Foods:     food.NewHandler(foodService),
		Reviews:   review.NewHandler(reviewService),
		Orders:    order.NewHandler(orderService),
		Favorites: favorite.NewHandler(favoriteService),
		Analytics: analytics.NewHandler(analyticsService),
		Checks:    healthChecks(pool, rdb),
	})

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("API running", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server failed", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutdown signal received, cleaning up...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set, sentiment summary cache disabled")
		return nil
	}

	rdb, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		// the cache is optional; run without it
		slog.Warn("Redis unavailable, sentiment summary cache disabled", "error", err)
		return nil
	}
	return rdb
}

func healthChecks(pool *pgxpool.Pool, rdb *goredis.Client) map[string]router.Pinger {
	checks := map[string]router.Pinger{
		"postgres": pool.Ping,
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
