package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/14kear/online_elections/internal/app"
	"github.com/14kear/online_elections/internal/config"
	"github.com/14kear/online_elections/migrations"
	"github.com/14kear/online_elections/utils"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.MustLoad()

	log := utils.New(cfg.Env)
	if cfg.Env == utils.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := migrations.Up(cfg.StoragePath, cfg.MigrationsTable); err != nil {
		log.Error("failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to build application", sl.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := application.HTTPServer.Run(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("HTTP server closed gracefully")
				return
			}
			log.Error("failed to run HTTP server", sl.Err(err))
			stop()
		}
	}()

	log.Info("election service started", slog.String("env", cfg.Env), slog.Int("port", cfg.HTTP.Port))

	<-ctx.Done()

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop application", sl.Err(err))
		os.Exit(1)
	}

	log.Info("election service stopped")
}
