// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-rate/auth"
	"github.com/danielhkuo/quickly-rate/catalog"
	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/session"
)

type SessionHandler struct {
	store *session.Store
	items *catalog.Repository
	cfg   cliparse.Config
}

func NewSessionHandler(store *session.Store, items *catalog.Repository, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: store, items: items, cfg: cfg}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if auth.IsAnonymous(req.CreatorID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "creator_id uses a reserved prefix")
		return
	}
	creatorID := req.CreatorID
	if creatorID == "" {
		creatorID = auth.AnonymousID(middleware.GetClientIP(r), h.cfg.IdentitySalt)
	}

	candidates := make([]models.Item, 0, len(req.Items)+len(req.ItemIDs))

	// Inline items come from the catalogue client and are stored for later lookups
	for _, item := range req.Items {
		saved, err := h.items.Upsert(r.Context(), item)
		if errors.Is(err, catalog.ErrInvalidItem) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			slog.Error("failed to save item", "error", err, "item_id", item.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, saved)
	}

	resolved, err := h.items.GetMany(r.Context(), req.ItemIDs)
	if errors.Is(err, catalog.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to resolve items", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	candidates = append(candidates, resolved...)

	s, err := h.store.CreateSession(creatorID, candidates)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session ready",
		"session_id", s.ID,
		"creator_id", creatorID,
		"expires", humanize.Time(s.ExpiresAt),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		Session:  s,
		Duration: h.store.Duration().String(),
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
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
	if err != nil {
		slog.Error("failed to get session", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s)
}

// SubmitVote handles POST /sessions/{id}/votes
// Every accepted vote counts; repeat votes from the same voter are kept
func (h *SessionHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VoterName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_name is required")
		return
	}
	if len(req.VoterName) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_name must be at most 50 characters")
		return
	}

	// The store accepts any rating; range checks belong to the caller
	if req.Rating < models.MinRating || req.Rating > models.MaxRating {
		middleware.ErrorResponse(w, http.StatusBadRequest, "rating must be between 1 and 10")
		return
	}

	// Only the server hands out anonymous IDs
	if auth.IsAnonymous(req.VoterID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id uses a reserved prefix")
		return
	}
	voterID := req.VoterID
	if voterID == "" {
		voterID = auth.AnonymousID(middleware.GetClientIP(r), h.cfg.IdentitySalt)
	}

	err := h.store.AddVote(sessionID, models.Vote{
		VoterID:   voterID,
		VoterName: req.VoterName,
		ItemID:    req.ItemID,
		Rating:    req.Rating,
	})

	switch {
	case errors.Is(err, session.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, session.ErrInactive):
		middleware.ErrorResponse(w, http.StatusConflict, "Session is no longer accepting votes")
		return
	case err != nil:
		slog.Error("failed to add vote", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "session_id", sessionID, "voter_id", voterID, "item_id", req.ItemID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Message: "Vote recorded",
	})
}

// GetResults handles GET /sessions/{id}/results
// Unknown sessions yield an empty leaderboard rather than 404
func (h *SessionHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.store.GetResults(sessionID))
}
