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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/CS222-UIUC/fa25-fa25-team027/pkg/validator"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/adapter/handler"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/app"
	httpmw "github.com/CS222-UIUC/fa25-fa25-team027/internal/infrastructure/http/middleware"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
)

// @title           Meeting Minion API
// @version         1.0
// @description     Turns meeting transcripts and recordings into stored summaries with key points, decisions and action items.

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpmw.RequestID())
	e.Use(httpmw.ZapLogger(logger))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Initialize dependencies
	logger.Info("app.initializing", zap.String("environment", cfg.Server.Environment))
	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("app.init_failed", zap.Error(err))
	}
	defer a.Close()

	meetingHandler := handler.NewMeetingHandler(a.Service, logger)
	router := handler.NewRouter(cfg, meetingHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("server.starting",
			zap.String("addr", addr),
			zap.String("health", fmt.Sprintf("http://%s/health", addr)))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server.start_failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("server.shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server.forced_shutdown", zap.Error(err))
		return
	}

	logger.Info("server.stopped")
}
