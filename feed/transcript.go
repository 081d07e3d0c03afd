package feed

import (
	"chat-box/domain/event"
	"context"
	"log/slog"
	"time"
)

// TranscriptFeed plays recorded events with a fixed delay between them.
// It finishes once every event has been sent.
type TranscriptFeed struct {
	log    *slog.Logger
	events []event.DomainEvent
	delay  time.Duration
	out    chan<- event.DomainEvent
}

func NewTranscriptFeed(log *slog.Logger, events []event.DomainEvent, delay time.Duration, out chan<- event.DomainEvent) *TranscriptFeed {
	return &TranscriptFeed{log: log.With("feed", "transcript"), events: events, delay: delay, out: out}
}

func (f *TranscriptFeed) Run(ctx context.Context) error {
	for i, evt := range f.events {
		if i > 0 && f.delay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(f.delay):
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case f.out <- evt:
		}
	}
	f.log.Debug("Transcript played", "events", len(f.events))
	return nil
}
