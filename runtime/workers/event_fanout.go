package workers

import (
	"chat-box/contract"
	"chat-box/domain/event"
	"context"
	"log/slog"
	"time"
)

// EventFanout hands every event read from its channel to each sink in turn.
//
// Delivery is best effort: a sink failing or exceeding sinkTimeout is logged
// and skipped, the other sinks still get the event. Ordering is preserved
// per sink because events are dispatched one at a time.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan event.DomainEvent, sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, events: events, sinks: sinks, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Event channel closed, stopping fanout")
				return nil
			}
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout delivers evt to every sink.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed", "sink", sinkName(sink), "chat_id", evt.ChatID(), "error", err)
		}
		cancel()
	}
}

func sinkName(s contract.EventSink) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "anonymous"
}
