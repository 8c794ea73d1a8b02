package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
)

const defaultQueueSize = 256

var (
	ErrQueueFull = errors.New("webhook queue is full")
	ErrClosed    = errors.New("webhook is closed")
)

// Webhook POSTs every event as JSON to a single URL from a background worker.
// Publish only enqueues; a full queue drops the event.
type Webhook struct {
	log     *slog.Logger
	url     string
	client  *http.Client
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan Envelope
	done   chan struct{}
}

func NewWebhook(log *slog.Logger, url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	w := &Webhook{
		log:     log.With(slog.String("sink", "webhook"), slog.String("url", url)),
		url:     url,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		queue:   make(chan Envelope, defaultQueueSize),
		done:    make(chan struct{}),
	}
	go w.run()

	return w
}

func (w *Webhook) Publish(_ context.Context, event entity.Event, payload any) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return ErrClosed
	}

	select {
	case w.queue <- newEnvelope(event, payload):
		return nil
	default:
		return fmt.Errorf("%s: %w", event, ErrQueueFull)
	}
}

// Close stops accepting events and waits for the queued ones to be sent.
func (w *Webhook) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	<-w.done
}

func (w *Webhook) run() {
	defer close(w.done)

	for env := range w.queue {
		if err := w.send(env); err != nil {
			w.log.Warn("failed to deliver event", slog.String("event", string(env.Event)), sl.Err(err))
		}
	}
}

func (w *Webhook) send(env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
