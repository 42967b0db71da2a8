package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/analytics"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/auth"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/favorite"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/food"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/middleware"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/order"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/review"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	Clock          clockwork.Clock
}

type Deps struct {
	Tokens    *auth.TokenManager
	Auth      *auth.Handler
	Foods     *food.Handler
	Reviews   *review.Handler
	Orders    *order.Handler
	Favorites *favorite.Handler
	Analytics *analytics.Handler

	// Checks run on /health, keyed by component name.
	Checks map[string]Pinger
}

func NewRouter(opts Options, deps Deps) *gin.Engine {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:5173"}
	}

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			apperrors.Respond(c, apperrors.Internal("internal server error", fmt.Errorf("panic: %v", recovered)))
		}),
		middleware.RequestID(),
		middleware.Observe(),
		cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", health(deps.Checks))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst, opts.Clock)
	api := r.Group("/api", limiter.Middleware())

	requireAuth := middleware.AuthMiddleware(deps.Tokens)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", deps.Auth.Register)
		authGroup.POST("/login", deps.Auth.Login)
		authGroup.GET("/me", requireAuth, deps.Auth.Me)
	}

	// ───────────────────────── FOODS ─────────────────────────
	foods := api.Group("/foods")
	{
		foods.GET("", deps.Foods.List)
		foods.GET("/most-loved", deps.Foods.MostLoved)
		foods.GET("/most-selling", deps.Foods.MostSelling)
		foods.GET("/trending", deps.Orders.Trending)
		foods.GET("/:id", deps.Foods.Get)

		foods.POST("", requireAuth, adminOnly, deps.Foods.Create)
		foods.PUT("/:id", requireAuth, adminOnly, deps.Foods.Update)
		foods.DELETE("/:id", requireAuth, adminOnly, deps.Foods.Delete)
	}

	// ───────────────────────── REVIEWS ─────────────────────────
	reviews := api.Group("/reviews")
	{
		reviews.POST("", requireAuth, deps.Reviews.Create)
		reviews.POST("/analyze", deps.Reviews.Analyze)
		reviews.GET("/food/:foodId", deps.Reviews.ListForFood)
	}

	// ───────────────────────── ORDERS ─────────────────────────
	orders := api.Group("/orders", requireAuth)
	{
		orders.POST("", deps.Orders.Create)
		orders.GET("/my", deps.Orders.Mine)

		orders.GET("", adminOnly, deps.Orders.List)
		orders.PUT("/:id/status", adminOnly, deps.Orders.UpdateStatus)
	}

	// ───────────────────────── FAVORITES ─────────────────────────
	favorites := api.Group("/favorites", requireAuth)
	{
		favorites.GET("", deps.Favorites.List)
		favorites.POST("/:foodId", deps.Favorites.Toggle)
	}

	// ───────────────────────── ANALYTICS ─────────────────────────
	adminAnalytics := api.Group("/analytics", requireAuth, adminOnly)
	{
		adminAnalytics.GET("/dashboard", deps.Analytics.Dashboard)
		adminAnalytics.GET("/health-insights", deps.Analytics.HealthInsights)
		adminAnalytics.GET("/sentiment", deps.Analytics.Sentiment)
		adminAnalytics.POST("/sentiment/recompute", deps.Analytics.Recompute)
	}

	return r
}

func health(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		components := gin.H{}
		for name, ping := range checks {
			if err := ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				components[name] = "down"
				continue
			}
			components[name] = "up"
		}

		body := gin.H{"status": "ok", "components": components}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		c.JSON(status, body)
	}
}
