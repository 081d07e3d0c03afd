package feed

import (
	"chat-box/domain/event"
	"chat-box/errors"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

const natsBuffer = 64

// NATSFeed subscribes to <subject>.* and forwards decoded events to out.
// It also publishes the authed user's messages on <subject>.<chat>.
type NATSFeed struct {
	log     *slog.Logger
	url     string
	subject string
	out     chan<- event.DomainEvent

	mu   sync.RWMutex
	conn *nats.Conn
}

func NewNATSFeed(log *slog.Logger, url, subject string, out chan<- event.DomainEvent) *NATSFeed {
	return &NATSFeed{log: log.With("feed", "nats"), url: url, subject: subject, out: out}
}

// Run returns an error on connection failure so the supervisor retries it.
func (f *NATSFeed) Run(ctx context.Context) error {
	nc, err := nats.Connect(f.url,
		nats.Name("chat-box"),
		nats.Timeout(2*time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	msgs := make(chan *nats.Msg, natsBuffer)
	sub, err := nc.ChanSubscribe(f.subject+".*", msgs)
	if err != nil {
		nc.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", f.subject, err)
	}
	f.setConn(nc)
	defer func() {
		f.setConn(nil)
		_ = sub.Unsubscribe()
		nc.Close()
	}()
	f.log.Info("Subscribed", "subject", f.subject+".*")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-msgs:
			if err := f.forward(ctx, msg); err != nil {
				f.log.Warn("Message skipped", "subject", msg.Subject, "error", err)
			}
		}
	}
}

func (f *NATSFeed) forward(ctx context.Context, msg *nats.Msg) error {
	evt, err := Decode(msg.Subject, msg.Data)
	if err != nil {
		return err
	}
	select {
	case f.out <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish sends a posted message. It fails while the feed is not connected.
func (f *NATSFeed) Publish(_ context.Context, e event.MessagePosted) error {
	f.mu.RLock()
	nc := f.conn
	f.mu.RUnlock()
	if nc == nil {
		return errors.ErrNotConnected
	}
	data, err := Encode(e)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s.%s", f.subject, e.Chat)
	if err := nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", subject, err)
	}
	return nil
}

func (f *NATSFeed) setConn(nc *nats.Conn) {
	f.mu.Lock()
	f.conn = nc
	f.mu.Unlock()
}
