// Package server implements the trackdash HTTP/JSON API on top of a store
// and an event publisher.
package server

import (
	"context"
	"log/slog"

	"github.com/okazakilab/trackdash/internal/events"
	"github.com/okazakilab/trackdash/internal/store"
)

// DashServer holds the dependencies shared by all HTTP handlers.
type DashServer struct {
	store     store.Store
	publisher events.Publisher
}

// NewDashServer returns a new DashServer backed by the given store and publisher.
func NewDashServer(s store.Store, p events.Publisher) *DashServer {
	return &DashServer{
		store:     s,
		publisher: p,
	}
}

// publish emits an event; failures are logged but do not block the caller.
func (s *DashServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// inputError indicates invalid user input.
// The HTTP layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
