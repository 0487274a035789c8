package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
	pkgvalidator "github.com/CS222-UIUC/fa25-fa25-team027/pkg/validator"

	// registers the swagger spec served under /swagger
	_ "github.com/CS222-UIUC/fa25-fa25-team027/docs"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	if e.Validator == nil {
		e.Validator = pkgvalidator.New()
	}

	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupSummaryRoutes(v1)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	if rt.meetingHandler == nil {
		meetings.Any("*", rt.notImplemented)
		return
	}
	meetings.POST("/process", rt.meetingHandler.ProcessTranscript)
	meetings.POST("/process/audio", rt.meetingHandler.ProcessAudio, middleware.BodyLimit("512M"))
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
}

// setupSummaryRoutes configures summary-only routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	summaries := g.Group("/summaries")

	if rt.meetingHandler == nil {
		summaries.Any("*", rt.notImplemented)
		return
	}
	summaries.POST("/extract", rt.meetingHandler.ExtractSummary)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"environment": env,
	})
}
