package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapp "github.com/14kear/online_elections/internal/app/http"
	"github.com/14kear/online_elections/internal/config"
	"github.com/14kear/online_elections/internal/handlers"
	"github.com/14kear/online_elections/internal/middleware"
	"github.com/14kear/online_elections/internal/notify"
	"github.com/14kear/online_elections/internal/principal"
	"github.com/14kear/online_elections/internal/repo/postgres"
	"github.com/14kear/online_elections/internal/services"
)

type App struct {
	HTTPServer *httpapp.App
	Lifecycle  *services.Lifecycle
	Voting     *services.Voting
	Tallying   *services.Tallying

	storage *postgres.Storage
	webhook *notify.Webhook
}

func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.NewApp"

	storage, err := postgres.New(cfg.StoragePath, cfg.StorageTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sinks := notify.Multi{notify.NewLogSink(log.With(slog.String("component", "notify/log")))}
	var webhook *notify.Webhook
	if cfg.Notify.WebhookURL != "" {
		webhook = notify.NewWebhook(log, cfg.Notify.WebhookURL, cfg.Notify.Timeout)
		sinks = append(sinks, webhook)
	}

	clock := services.SystemClock{}
	lifecycle := services.NewLifecycle(log, storage, storage, sinks, clock)
	voting := services.NewVoting(log, lifecycle, storage, sinks, clock)
	tallying := services.NewTallying(log, lifecycle, storage, storage, storage, sinks, clock)

	provider := principal.NewProvider(log, storage, cfg.Auth.Secret)
	authMiddleware := middleware.NewAuthMiddleware(log, provider)

	handler := handlers.NewElectionHandler(log, lifecycle, voting, tallying)

	httpApp := httpapp.NewApp(log, httpapp.Config{
		Port:           cfg.HTTP.Port,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, handler, authMiddleware.Middleware())

	return &App{
		HTTPServer: httpApp,
		Lifecycle:  lifecycle,
		Voting:     voting,
		Tallying:   tallying,
		storage:    storage,
		webhook:    webhook,
	}, nil
}

// Stop shuts the HTTP server down first so no request publishes into a
// closed webhook, then drains the webhook and closes the store.
func (a *App) Stop(ctx context.Context) error {
	err := a.HTTPServer.Stop(ctx)
	if a.webhook != nil {
		a.webhook.Close()
	}
	return errors.Join(err, a.storage.Close())
}
