// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/notify"
	"github.com/danielhkuo/quickly-rate/session"
)

const DefaultHeartbeat = 30 * time.Second

type EventsHandler struct {
	store     *session.Store
	hub       *notify.Hub
	heartbeat time.Duration
}

func NewEventsHandler(store *session.Store, hub *notify.Hub) *EventsHandler {
	return &EventsHandler{store: store, hub: hub, heartbeat: DefaultHeartbeat}
}

// Stream handles GET /sessions/{id}/events
// Server-Sent Events: one event per VotesUpdated/SessionExpired, ends after expiry
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	s, err := h.store.GetSession(sessionID)
	if errors.Is(err, session.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	// Join before reading results so nothing published in between is missed
	sub := h.hub.Subscribe(sessionID)
	defer h.hub.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	slog.Info("subscriber joined", "session_id", sessionID, "subscriber_id", sub.ID)
	defer slog.Info("subscriber left", "session_id", sessionID, "subscriber_id", sub.ID)

	// Catch up: the hub does not replay earlier updates
	if _, err := h.store.GetSession(sessionID); errors.Is(err, session.ErrNotFound) {
		writeEvent(w, flusher, models.Event{Type: models.EventSessionExpired, SessionID: sessionID})
		return
	}
	// Ends the stream at the deadline even if the hub dropped SessionExpired
	clk := h.store.Clock()
	deadline := clk.NewTimer(s.ExpiresAt.Sub(clk.Now()))
	defer deadline.Stop()

	results := h.store.GetResults(sessionID)
	if err := writeEvent(w, flusher, models.Event{
		Type:      models.EventVotesUpdated,
		SessionID: sessionID,
		Results:   &results,
	}); err != nil {
		return
	}

	// Updates queued before the snapshot was taken are already reflected in it
	delivered := results.TotalVotes

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-deadline.Chan():
			writeEvent(w, flusher, models.Event{Type: models.EventSessionExpired, SessionID: sessionID})
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-sub.Events():
			if !ok {
				// hub closed on shutdown
				return
			}
			if ev.Type == models.EventVotesUpdated && ev.Results != nil {
				if ev.Results.TotalVotes <= delivered {
					continue
				}
				delivered = ev.Results.TotalVotes
			}
			if err := writeEvent(w, flusher, ev); err != nil {
				slog.Warn("failed to send event", "error", err, "session_id", sessionID)
				return
			}
			if ev.Type == models.EventSessionExpired {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, ev models.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
