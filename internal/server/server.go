package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barterhub/internal/config"
	"barterhub/internal/handler"
	"barterhub/internal/middleware"
	"barterhub/internal/redis"
	"barterhub/internal/services"
	"barterhub/internal/transport/httpdto"
	"barterhub/pkg/database"
	"barterhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Offers    *handler.OfferHandler
	Interests *handler.InterestHandler
	Chats     *handler.ChatHandler
	Exchanges *handler.ExchangeHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	switch cfg.Server.Environment {
	case "production", ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		if redis.IsInitialized() {
			if err := redis.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	requireAuth := middleware.AuthMiddleware(authService)

	auth := s.engine.Group("/api/auth")
	auth.Use(middleware.AuthRateLimitMiddleware(limiter))
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}
	s.engine.GET("/api/auth/me", requireAuth, handlers.Auth.Me)
	s.engine.GET("/api/users/:id", requireAuth, handlers.Auth.Profile)

	offers := s.engine.Group("/api/offers")
	offers.Use(requireAuth)
	{
		offers.POST("", handlers.Offers.Create)
		offers.GET("", handlers.Offers.List)
		offers.GET("/mine", handlers.Offers.ListMine)
		offers.GET("/:id", handlers.Offers.GetByID)
		offers.DELETE("/:id", handlers.Offers.Remove)
		offers.GET("/:id/interests", handlers.Offers.ListInterests)
		offers.POST("/:id/interests", middleware.InterestRateLimitMiddleware(limiter), handlers.Interests.Express)
	}

	interests := s.engine.Group("/api/interests")
	interests.Use(requireAuth)
	{
		interests.GET("", handlers.Interests.ListMine)
		interests.DELETE("/:id", handlers.Interests.Cancel)
		interests.POST("/:id/realize", handlers.Interests.Realize)
		interests.POST("/:id/unrealize", handlers.Interests.Unrealize)
	}

	chats := s.engine.Group("/api/chats")
	chats.Use(requireAuth)
	{
		chats.GET("", handlers.Chats.ListMine)
		chats.GET("/with/:userId", handlers.Chats.GetWith)
		chats.POST("/:id/archive", handlers.Chats.Archive)
		chats.GET("/:id/messages", handlers.Chats.ListMessages)
		chats.POST("/:id/messages", middleware.MessageRateLimitMiddleware(limiter), handlers.Chats.SendMessage)
	}

	exchanges := s.engine.Group("/api/exchanges")
	exchanges.Use(requireAuth)
	{
		exchanges.GET("", handlers.Exchanges.ListMine)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.Server.Port)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.Server.Port)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
