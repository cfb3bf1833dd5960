package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mps-sg/bookspace-api/internal/config"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	domainRepo "github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/handler"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/middleware"
	"github.com/mps-sg/bookspace-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Location  *handler.LocationHandler
	Booking   *handler.BookingHandler
	Voucher   *handler.VoucherHandler
	Package   *handler.PackageHandler
	Payment   *handler.PaymentHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerPublicRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}

	// Locations are public so the booking form can render before login
	locations := v1.Group("/locations")
	{
		locations.GET("", h.Location.List)
		locations.GET("/:id", h.Location.Get)
	}

	// The payment provider authenticates via HMAC, not a bearer token
	v1.POST("/payments/webhook", h.Payment.Webhook)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Bookings
	bookings := protected.Group("/bookings")
	{
		bookings.GET("", h.Booking.List)
		// Booking creation uses idempotency middleware to prevent duplicates
		bookings.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Booking.Create)
		bookings.POST("/quote", h.Booking.Quote)
		bookings.GET("/:id", h.Booking.Get)
		bookings.POST("/:id/cancel", h.Booking.Cancel)
	}

	// Vouchers
	vouchers := protected.Group("/vouchers")
	{
		vouchers.POST("/validate", h.Voucher.Validate)
		vouchers.GET("/redemptions", h.Voucher.Redemptions)
	}

	// Packages
	packages := protected.Group("/packages")
	{
		packages.GET("", h.Package.List)
		packages.POST("", h.Package.Purchase)
	}

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard.Stats)
		admin.GET("/vouchers", h.Voucher.List)
		admin.POST("/vouchers", h.Voucher.Create)
		admin.PUT("/vouchers/:id", h.Voucher.Update)
		admin.DELETE("/vouchers/:id", h.Voucher.Delete)
	}
}
