package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"scheme-assistant-platform/internal/auth"
	"scheme-assistant-platform/internal/config"
	"scheme-assistant-platform/internal/locale"
	"scheme-assistant-platform/internal/logger"
	"scheme-assistant-platform/internal/store"
	"scheme-assistant-platform/internal/telemetry"
	"scheme-assistant-platform/middleware"
	"scheme-assistant-platform/routes"
	"scheme-assistant-platform/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// A malformed catalogue is fatal at startup; request-time code
	// never sees a partially loaded one.
	catalog, err := services.LoadCatalog(cfg.SchemeDataPath)
	if err != nil {
		log.Fatal("Failed to load scheme catalogue:", err)
	}
	logger.Info("Scheme catalogue loaded", "path", cfg.SchemeDataPath, "schemes", catalog.Len())

	// Optional Redis (rate limiting, networked session/OTP stores)
	var rdb *redis.Client
	if cfg.RedisEnabled {
		rdb, err = config.NewRedisClient(cfg)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer rdb.Close()
	}

	var (
		sessionStore store.SessionStore
		otpStore     store.OTPStore
	)
	if cfg.StoreBackend == "redis" {
		sessionStore = store.NewRedisSessionStore(rdb)
		otpStore = store.NewRedisOTPStore(rdb)
	} else {
		sessionStore = store.NewMemorySessionStore()
		otpStore = store.NewMemoryOTPStore()
	}

	tokenIssuer, err := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenExpiresIn)
	if err != nil {
		log.Fatal("Failed to initialize token issuer:", err)
	}

	// Tracing and metrics
	var metrics *telemetry.Metrics
	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("scheme-assistant-platform", cfg.OTLPEndpoint)
		if err != nil {
			log.Fatal("Failed to initialize tracer:", err)
		}
		defer shutdown()

		metrics, err = telemetry.InitMetrics()
		if err != nil {
			log.Fatal("Failed to initialize metrics:", err)
		}
	}

	// Core services
	normalizer := locale.NewNormalizer(cfg.SupportedLanguages, cfg.DefaultLanguage)
	retriever := services.NewRetriever(catalog)
	responder := services.NewResponder(cfg.MaxResponseBytes, cfg.MaxActionSteps)
	fallback := services.NewEmptyResultHandler()
	sessions := services.NewSessionManager(sessionStore, cfg.SessionTimeout, cfg.MaxHistoryLength)
	otpService := services.NewOTPService(otpStore, cfg.OTPCooldown, cfg.OTPExpiry, tokenIssuer)
	assistant := services.NewAssistant(retriever, responder, fallback, sessions, normalizer, metrics, cfg.MaxSchemeResults)

	// Background sweep for stale sessions and expired OTPs
	sweeper := services.NewSweeper(sessions, otpService)
	if err := sweeper.Start(cfg.SweepInterval); err != nil {
		log.Fatal("Failed to start sweeper:", err)
	}
	defer sweeper.Stop()

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())

	if cfg.TracingEnabled {
		router.Use(middleware.TracingMiddleware())
		router.Use(middleware.MetricsMiddleware(metrics))
	}

	if rdb != nil {
		router.Use(middleware.RateLimitMiddleware(rdb, cfg))
	} else {
		router.Use(middleware.LocalRateLimitMiddleware(cfg))
	}

	router.Use(middleware.CompressionMiddleware())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	router.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupAskRoutes(router, cfg, assistant, responder)
	routes.SetupAuthRoutes(router, otpService, normalizer, metrics)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
