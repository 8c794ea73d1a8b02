package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/14kear/online_elections/internal/handlers"
	"github.com/14kear/online_elections/internal/middleware"
	"github.com/14kear/online_elections/internal/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

type App struct {
	log    *slog.Logger
	engine *gin.Engine
	server *http.Server
}

// NewApp builds the gin engine and registers every route under /api behind
// the auth middleware.
func NewApp(
	log *slog.Logger,
	cfg Config,
	handler *handlers.ElectionHandler,
	authMiddleware gin.HandlerFunc,
) *App {
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api", authMiddleware)
	{
		routes.RegisterElectionRoutes(api, handler)
		routes.RegisterVoteRoutes(api, handler)
	}

	// Healthcheck
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return &App{
		log:    log,
		engine: r,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Run blocks until the server stops. A graceful shutdown returns
// http.ErrServerClosed.
func (a *App) Run() error {
	a.log.Info("HTTP server is running", slog.String("addr", a.server.Addr))
	return a.server.ListenAndServe()
}

func (a *App) Stop(ctx context.Context) error {
	a.log.Info("HTTP server is stopping", slog.String("addr", a.server.Addr))
	return a.server.Shutdown(ctx)
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}
