package server

import (
	"fmt"
	"html/template"
	"io"
	"net/http"

	"NutriAI/web"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// TemplateRenderer is a custom html/template renderer for Echo framework
type TemplateRenderer struct {
	templates *template.Template
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// Client addresses come from the connection, never from forwarding headers.
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(middleware.Recover())
	e.Use(LoggerMiddleware)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			loggerFrom(c).Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", s.cfg.MaxUploadMB)))

	modelLimit := s.modelRateLimit()

	e.StaticFS("/static", web.Public())

	e.Renderer = &TemplateRenderer{
		templates: template.Must(template.ParseFS(web.Templates, "templates/*.html")),
	}

	// Web page routes
	e.GET("/", s.indexHandler)
	e.POST("/analyze", s.analyzeHandler, modelLimit...)
	e.POST("/meal-plan", s.mealPlanHandler, modelLimit...)
	e.GET("/meal-plan/:id/download", s.downloadPlanHandler)

	e.GET("/health", s.healthHandler)

	// JSON API routes
	api := e.Group("/api")
	api.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"https://*", "http://*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:       300,
	}))
	api.Use(modelLimit...)
	api.POST("/analyze", s.apiAnalyzeHandler)
	api.POST("/meal-plan", s.apiMealPlanHandler)

	return e
}

// modelRateLimit returns the per-IP limiter for routes that call the model.
// Every route shares one store, so the page and the JSON API draw on the same
// quota. A zero RateLimit disables it.
func (s *Server) modelRateLimit() []echo.MiddlewareFunc {
	if s.cfg.RateLimit <= 0 {
		return nil
	}
	store := middleware.NewRateLimiterMemoryStore(rate.Limit(s.cfg.RateLimit))
	return []echo.MiddlewareFunc{middleware.RateLimiter(store)}
}

// LoggerMiddleware tags every request with an id and attaches a child logger
// to both the echo context and the request context.
func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)

		logger := log.With().Str("request_id", requestID).Logger()

		c.Set("logger", &logger)
		c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))

		return next(c)
	}
}

func loggerFrom(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get("logger").(*zerolog.Logger); ok {
		return logger
	}
	return &log.Logger
}
