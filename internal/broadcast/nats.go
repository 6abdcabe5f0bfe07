package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	natsMaxReconnects = -1 // retry forever
	natsReconnectWait = 2 * time.Second
)

// NATSPublisher publishes each Event as JSON on "<prefix>.<event type>",
// e.g. "fixturedesk.fixture.created".
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("fixturedesk"),
		nats.MaxReconnects(natsMaxReconnects),
		nats.ReconnectWait(natsReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error("nats error", "error", err)
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("broadcast.NewNATSPublisher: connect: %w", err)
	}
	return &NATSPublisher{nc: nc, prefix: prefix}, nil
}

// Subject returns the subject an event of type t is published on.
func Subject(prefix string, t EventType) string {
	if prefix == "" {
		return string(t)
	}
	return prefix + "." + string(t)
}

func (p *NATSPublisher) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("broadcast.NATSPublisher.Publish: marshal: %w", err)
	}
	if err := p.nc.Publish(Subject(p.prefix, e.Type), data); err != nil {
		return fmt.Errorf("broadcast.NATSPublisher.Publish: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}
