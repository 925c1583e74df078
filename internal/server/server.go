package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coursehub/internal/auth"
	"coursehub/internal/config"
	"coursehub/internal/handler"
	"coursehub/internal/metrics"
	"coursehub/internal/middleware"
	"coursehub/internal/repository"
	"coursehub/internal/service"
)

// Deps are the long-lived components the routes are built from.
type Deps struct {
	Users   repository.UserRepository
	Courses repository.CourseRepository
	Hasher  *auth.Hasher
	Tokens  *auth.TokenService
	Metrics *metrics.Metrics
}

type Server struct {
	router *gin.Engine
	cfg    config.ServerConfig
	deps   Deps
	logger *zap.Logger
}

func NewServer(cfg config.ServerConfig, deps Deps, logger *zap.Logger) (*Server, error) {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.CORS(), middleware.RequestMetrics(deps.Metrics))

	s := &Server{
		router: router,
		cfg:    cfg,
		deps:   deps,
		logger: logger,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	authService, err := service.NewAuthService(s.deps.Users, s.deps.Hasher, s.deps.Tokens, s.deps.Metrics, s.logger)
	if err != nil {
		return err
	}
	authHandler := handler.NewAuthHandler(authService, s.logger)
	courseHandler := handler.NewCourseHandler(s.deps.Courses, s.logger)
	userHandler := handler.NewUserHandler(s.deps.Users, s.logger)

	guard := middleware.IdentityGuard(s.deps.Tokens, s.deps.Metrics, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	s.router.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))

	api := s.router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/register", authHandler.Register)

		api.GET("/courses", courseHandler.GetCourses)
		api.GET("/courses/:id", courseHandler.GetCourse)
		api.POST("/courses", guard, courseHandler.CreateCourse)

		api.GET("/users/profile", guard, userHandler.GetProfile)
		api.PATCH("/users/profile", guard, userHandler.UpdateProfile)
	}

	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info("Server exited")
	return nil
}
