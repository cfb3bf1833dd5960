package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mps-sg/bookspace-api/internal/application/service"
	"github.com/mps-sg/bookspace-api/internal/config"
	"github.com/mps-sg/bookspace-api/internal/infrastructure/database"
	"github.com/mps-sg/bookspace-api/internal/infrastructure/payment"
	"github.com/mps-sg/bookspace-api/internal/infrastructure/repository"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/handler"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/routes"
	"github.com/mps-sg/bookspace-api/pkg/email"
	"github.com/mps-sg/bookspace-api/pkg/utils"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Warn().Err(err).Msg("failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize payment provider client
	paymentClient := payment.NewClient(&cfg.Payment)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	voucherService := service.NewVoucherService(voucherRepo)
	packageService := service.NewPackageService(packageRepo)
	bookingService := service.NewBookingService(
		bookingRepo,
		locationRepo,
		userRepo,
		voucherService,
		packageService,
		paymentClient,
		service.PaymentSettings{
			Currency:    cfg.Payment.Currency,
			RedirectURL: cfg.Payment.RedirectURL,
			WebhookURL:  cfg.Payment.WebhookURL,
		},
	)
	paymentService := service.NewPaymentService(
		paymentClient,
		emailService,
		bookingRepo,
		webhookEventRepo,
		cfg.Payment.WebhookSalt,
	)
	dashboardService := service.NewDashboardService(bookingRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Location:  handler.NewLocationHandler(locationRepo),
		Booking:   handler.NewBookingHandler(bookingService),
		Voucher:   handler.NewVoucherHandler(voucherService),
		Package:   handler.NewPackageHandler(packageService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8000"
	}

	log.Info().
		Str("service", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("port", port).
		Msg("starting server")

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
