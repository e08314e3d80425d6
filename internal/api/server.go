// Package api serves the study tracker over JSON HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/example/studytrack/internal/study"
)

type Options struct {
	Addr           string
	Service        *study.Service
	JWTSecret      []byte
	RateLimit      rate.Limit // requests per second and user, 0 disables limiting
	Burst          int
	Health         func(context.Context) error
	Logger         *slog.Logger
	DisableReqLogs bool
}

type Server struct {
	opts *Options
	app  *echo.Echo
}

var _ http.Handler = (*Server)(nil)

func NewServer(opts *Options) (*Server, error) {
	if opts.Service == nil {
		return nil, errors.New("api: a study service is required")
	}
	if len(opts.JWTSecret) == 0 {
		return nil, errors.New("api: a JWT secret is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s, nil
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.opts.Logger)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !s.opts.DisableReqLogs {
		s.app.Use(requestLogger(s.opts.Logger))
	}
	s.app.Use(middleware.Recover())

	s.app.GET("/healthz", s.health)

	g := s.app.Group("/api", jwtMiddleware(s.opts.JWTSecret))
	if s.opts.RateLimit > 0 {
		g.Use(rateLimitMiddleware(newRateLimiter(s.opts.RateLimit, s.opts.Burst)))
	}

	h := &handlers{svc: s.opts.Service}
	h.register(g)
}

// Start serves until Stop is called
func (s *Server) Start() error {
	s.opts.Logger.Info("http server listening", "addr", s.opts.Addr)
	if err := s.app.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "http server")
	}
	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) health(c echo.Context) error {
	if s.opts.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := s.opts.Health(ctx); err != nil {
			s.opts.Logger.Error("health check failed", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
