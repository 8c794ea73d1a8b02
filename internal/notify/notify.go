// Package notify holds the notification sinks the election services publish
// lifecycle and vote events to. Every sink is fire-and-forget: Publish never
// waits for delivery.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/google/uuid"
)

// Envelope is what leaves the process for every published event.
type Envelope struct {
	ID         string       `json:"id"`
	Event      entity.Event `json:"event"`
	OccurredAt time.Time    `json:"occurredAt"`
	Payload    any          `json:"payload"`
}

func newEnvelope(event entity.Event, payload any) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Sink interface {
	Publish(ctx context.Context, event entity.Event, payload any) error
}

// LogSink writes events to the logger.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Publish(_ context.Context, event entity.Event, payload any) error {
	s.log.Info("event published", slog.String("event", string(event)), slog.Any("payload", payload))
	return nil
}

// Multi fans an event out to every sink. All sinks are tried; their errors
// are joined.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, event entity.Event, payload any) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, event, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps published envelopes in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Envelope
	err    error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith makes subsequent Publish calls record the event and return err.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.err = err
}

func (r *Recorder) Publish(_ context.Context, event entity.Event, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, newEnvelope(event, payload))
	return r.err
}

func (r *Recorder) Events() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Envelope(nil), r.events...)
}

// Names returns the recorded event names in publish order.
func (r *Recorder) Names() []entity.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]entity.Event, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Event)
	}
	return names
}
