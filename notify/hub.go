// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-rate/models"
)

const DefaultBuffer = 16

// Hub groups subscribers by session ID and fans events out to them
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[string]*Subscription
	buffer int
	logger *slog.Logger
	closed bool
}

// Subscription is one participant's membership in a session group
type Subscription struct {
	ID        string
	SessionID string

	events chan models.Event
	once   sync.Once
}

// Events returns the channel events are delivered on. It is closed on Unsubscribe.
func (s *Subscription) Events() <-chan models.Event {
	return s.events
}

func (s *Subscription) close() {
	s.once.Do(func() { close(s.events) })
}

type Option func(*Hub)

// WithBuffer sets the per-subscriber queue capacity
func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) { h.logger = l }
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		groups: make(map[string]map[string]*Subscription),
		buffer: DefaultBuffer,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe joins the group for sessionID. Any holder of the ID may join.
// After Close the returned subscription's channel is already closed.
func (h *Hub) Subscribe(sessionID string) *Subscription {
	sub := &Subscription{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		events:    make(chan models.Event, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.close()
		return sub
	}

	group, ok := h.groups[sessionID]
	if !ok {
		group = make(map[string]*Subscription)
		h.groups[sessionID] = group
	}
	group[sub.ID] = sub
	return sub
}

// Unsubscribe leaves the group and closes the subscription channel. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if group, ok := h.groups[sub.SessionID]; ok {
		delete(group, sub.ID)
		if len(group) == 0 {
			delete(h.groups, sub.SessionID)
		}
	}
	sub.close()
}

// Publish enqueues ev for every current subscriber of sessionID without blocking.
// A subscriber whose queue is full misses this event; others are unaffected.
func (h *Hub) Publish(sessionID string, ev models.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.groups[sessionID] {
		select {
		case sub.events <- ev:
		default:
			h.logger.Debug("dropped notification",
				"session_id", sessionID,
				"subscriber_id", sub.ID,
				"type", ev.Type,
			)
		}
	}
}

// Subscribers returns the number of subscribers in the group for sessionID
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[sessionID])
}

// Close unsubscribes everyone. Later Subscribe calls get closed subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, group := range h.groups {
		for _, sub := range group {
			sub.close()
		}
		delete(h.groups, id)
	}
}
