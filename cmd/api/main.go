package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/advisor-site/lead-intake/internal/config"
	"github.com/advisor-site/lead-intake/internal/handlers"
	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/advisor-site/lead-intake/internal/notification"
	"github.com/advisor-site/lead-intake/internal/observability"
	"github.com/advisor-site/lead-intake/internal/services"
	"github.com/advisor-site/lead-intake/internal/utils/httpclient"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Lead Intake API
// @version         1.0
// @description     Accepts IUL application and contact submissions from the advisor site, validates them against the shared field rules and forwards them to the advisor by email.

// @host      localhost:8080
// @BasePath  /

// @tag.name intake
// @tag.description Application and contact submissions

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Logger.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Optional Redis backing for the rate limiter
	config.InitRedis()

	// Email settings are read per request, only warn here
	if missing := config.Email().Missing(); len(missing) > 0 {
		logging.Logger.Warn("email delivery not configured, submissions will be refused",
			zap.Strings("missing", missing))
	}

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := newRouter(config.AppConfig)
	if err != nil {
		logging.Logger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	limiter := services.NewSubmissionLimiter(
		config.Redis,
		config.AppConfig.SubmissionRateLimit,
		config.AppConfig.SubmissionRateWindow,
		logging.Logger,
	)
	if memory, ok := limiter.(*services.MemoryRateLimiter); ok {
		memory.StartCleanup(ctx, 5*time.Minute)
	}

	dispatcher := notification.NewDispatcher(notification.NewProviderRegistry(), logging.Logger)
	submissions := services.NewSubmissionService(dispatcher, config.Email, logging.Logger)

	handlers.Routes{
		Submissions:  handlers.NewSubmissionHandlers(logging.Logger, submissions),
		Schemas:      handlers.NewSchemaHandlers(logging.Logger),
		Limiter:      limiter,
		MaxBodyBytes: config.AppConfig.MaxBodyBytes,
	}.Register(router)

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.AppConfig.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	if config.Redis != nil {
		if err := config.Redis.Close(); err != nil {
			logging.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	httpclient.GetGlobalPool().Close()

	logging.Logger.Info("server exited gracefully")
}
