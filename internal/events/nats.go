package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// subscribeBuffer bounds how far a slow consumer may lag before overflow
// messages are dropped.
const subscribeBuffer = 64

// NATSPublisher emits activity events onto the trackdash bus as JSON.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher dials the bus at url.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("dialing NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish encodes the event as JSON and sends it on the topic.
func (p *NATSPublisher) Publish(_ context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", topic, err)
	}
	if err := p.conn.Publish(topic, payload); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// Envelope is one message taken off the bus: the concrete topic it arrived
// on (subscriptions may use wildcards) and the raw JSON payload.
type Envelope struct {
	Topic   string
	Payload []byte
}

// Decode unmarshals the payload into v, typically the event struct that
// corresponds to the envelope's topic (IssueCreated, SearchPerformed, ...).
func (e Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("decoding %s event: %w", e.Topic, err)
	}
	return nil
}

// NATSSubscriber consumes activity events, reconnecting indefinitely when
// the connection drops.
type NATSSubscriber struct {
	conn *nats.Conn
}

// NewNATSSubscriber dials the bus at url. Extra nats.Option values (e.g.
// disconnect handlers) are applied on top of the reconnect defaults.
func NewNATSSubscriber(url string, opts ...nats.Option) (*NATSSubscriber, error) {
	opts = append([]nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}, opts...)
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("dialing NATS at %s: %w", url, err)
	}
	return &NATSSubscriber{conn: conn}, nil
}

// Subscribe delivers envelopes for the topic (NATS wildcards such as
// "trackdash.>" are allowed) until the returned cancel func is called, at
// which point the channel is closed. A consumer that falls more than
// subscribeBuffer envelopes behind loses the overflow instead of stalling
// the connection's delivery callback.
func (s *NATSSubscriber) Subscribe(topic string) (<-chan Envelope, func(), error) {
	var (
		ch   = make(chan Envelope, subscribeBuffer)
		gate sync.Mutex
		done bool
	)

	sub, err := s.conn.Subscribe(topic, func(m *nats.Msg) {
		gate.Lock()
		defer gate.Unlock()
		if done {
			return
		}
		select {
		case ch <- Envelope{Topic: m.Subject, Payload: m.Data}:
		default:
		}
	})
	if err != nil {
		close(ch)
		return nil, nil, fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	// Force a round trip so the server has registered the subscription
	// before anything published on other connections can be missed.
	if err := s.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		close(ch)
		return nil, nil, fmt.Errorf("flushing subscription: %w", err)
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			_ = sub.Unsubscribe()
			gate.Lock()
			done = true
			gate.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}

// Close closes the underlying connection.
func (s *NATSSubscriber) Close() error {
	s.conn.Close()
	return nil
}
