package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/cache"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/external/blogfeed"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/platform/alexa"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/platform/clova"
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/platform/dialogflow"
	"github.com/seu-repo/smartspeaker-gateway/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/smartspeaker-gateway/internal/observability/telemetry"
	"github.com/seu-repo/smartspeaker-gateway/internal/ports"
	"github.com/seu-repo/smartspeaker-gateway/internal/service/blog"
	"github.com/seu-repo/smartspeaker-gateway/internal/service/health"
	"github.com/seu-repo/smartspeaker-gateway/internal/service/voice"
	"github.com/seu-repo/smartspeaker-gateway/pkg/config"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// 2. Initialize Logger
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting smart speaker gateway",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Initialize OpenTelemetry
	tracerProvider, err := telemetry.InitTracer(cfg.OpenTelemetry, cfg.App.Version)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 4. Initialize Cache (Redis, or in-memory when no URL is set)
	var titleCache ports.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		titleCache = redisCache
	} else {
		titleCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer titleCache.Close()

	// 5. Initialize Fact Provider (blog feed behind a circuit breaker)
	feedHTTP := circuitbreaker.NewHTTPClient(
		&http.Client{Timeout: cfg.Blog.FetchTimeout},
		circuitbreaker.New("blog-feed", cfg.CircuitBreaker, logger),
		logger,
	)
	feedClient := blogfeed.NewClient(feedHTTP, cfg.Blog.FeedURL, logger)
	facts := blog.NewProvider(feedClient, titleCache, cfg.Blog.FetchTimeout, cfg.Blog.CacheTTL, logger)

	// 6. Initialize Dispatcher
	messages, err := voice.NewMessages(cfg.Messages.Language, cfg.Messages.Overrides)
	if err != nil {
		logger.Fatal("Failed to build message table", zap.Error(err))
	}
	dispatcher := voice.NewDispatcher(facts, messages, logger)

	// 7. Initialize Platform Codecs
	verifier, err := newClovaVerifier(cfg.Clova, logger)
	if err != nil {
		logger.Fatal("Failed to load Clova signature key", zap.Error(err))
	}
	platforms := handlers.Platforms{
		Line:       clova.New(verifier, messages.Language()),
		GoogleHome: dialogflow.New(cfg.Dialogflow.WelcomeIntent),
		Alexa:      alexa.New(),
	}

	// 8. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ServerHeader:          cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}

	// Health Check Endpoints
	healthService := health.NewService(&health.Config{
		Version: cfg.App.Version,
		Cache:   titleCache,
		Feed:    feedHTTP,
	}, logger)
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	// Webhook Routes
	webhookHandler := handlers.NewWebhookHandler(dispatcher, logger)
	webhookHandler.RegisterRoutes(app.Group("/api"), platforms,
		middleware.CircuitBreaker(cfg.CircuitBreaker, logger),
		middleware.FunctionKey(cfg.Auth.FunctionKey),
	)

	// 9. Start Server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
		logger.Info("Starting HTTP Server", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func newClovaVerifier(cfg config.ClovaConfig, logger *zap.Logger) (clova.Verifier, error) {
	if cfg.SkipSignature {
		logger.Warn("Clova signature verification is disabled; do not run this in production")
		return clova.SkipVerifier{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key, err := clova.LoadPublicKey(ctx, &http.Client{Timeout: 10 * time.Second}, cfg.PublicKeyPath, cfg.PublicKeyURL)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded Clova signature key",
		zap.String("path", cfg.PublicKeyPath),
		zap.String("url", cfg.PublicKeyURL),
	)
	return clova.NewRSAVerifier(key), nil
}
