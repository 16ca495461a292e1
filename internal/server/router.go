package server

import (
	"context"
	"time"

	_ "github.com/18Abhinav07/SuavePay/docs"
	"github.com/18Abhinav07/SuavePay/internal/config"
	"github.com/18Abhinav07/SuavePay/internal/database"
	"github.com/18Abhinav07/SuavePay/internal/handlers"
	"github.com/18Abhinav07/SuavePay/internal/middleware"
	"github.com/18Abhinav07/SuavePay/internal/repository"
	"github.com/18Abhinav07/SuavePay/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const rateLimitCleanupInterval = 5 * time.Minute

// Router is the gin engine with its background workers. Close stops them.
type Router struct {
	*gin.Engine
	done chan struct{}
}

func (r *Router) Close() {
	close(r.done)
}

// NewRouter wires repositories, services and handlers onto a single shared
// database handle.
//
// @title           SuavePay API
// @version         1.0
// @description     Payment tracking between wallet addresses
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token
func NewRouter(cfg *config.Config, db *gorm.DB, logger *zap.SugaredLogger) *Router {
	userRepo := repository.NewUserRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := services.NewAuthService(userRepo, tokenService, cfg.Auth.BcryptCost)
	paymentService := services.NewPaymentService(transactionRepo)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	rateLimiter := middleware.NewRateLimiter(cfg.Auth.RateLimitRPS, cfg.Auth.RateLimitBurst, logger)

	authHandler := handlers.NewAuthHandler(logger, authService)
	paymentHandler := handlers.NewPaymentHandler(logger, paymentService)
	healthHandler := handlers.NewHealthHandler(handlers.PingerFunc(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	router := gin.New()
	// X-Forwarded-For is honoured only from these peers; the rate limiter keys on ClientIP
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warnw("ignoring invalid trusted proxies", "proxies", cfg.TrustedProxies, "error", err)
		router.SetTrustedProxies(nil)
	}
	router.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
		metrics.Handler(),
		middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins).Handler(),
	)

	router.GET("/healthz", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/docs", handlers.DocsUI("SuavePay API Documentation", "/swagger/doc.json"))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(rateLimiter.Handler())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/check-wallet", authHandler.CheckWallet)
		}

		// the web client calls the plural prefix
		for _, prefix := range []string{"/payment", "/payments"} {
			payment := api.Group(prefix)
			payment.Use(authMiddleware.RequireAuth())
			{
				payment.POST("/pay", paymentHandler.ProcessPayment)
				payment.GET("/transactions/:walletAddress", paymentHandler.GetTransactions)
			}
		}
	}

	done := make(chan struct{})
	rateLimiter.StartCleanup(rateLimitCleanupInterval, done)

	return &Router{Engine: router, done: done}
}
