// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-rate/catalog"
	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/models"
)

type ItemHandler struct {
	items *catalog.Repository
}

func NewItemHandler(items *catalog.Repository) *ItemHandler {
	return &ItemHandler{items: items}
}

// Upsert handles POST /items
func (h *ItemHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	item, err := h.items.Upsert(r.Context(), models.Item{
		ID:   req.ID,
		Name: req.Name,
		Tags: req.Tags,
	})
	if errors.Is(err, catalog.ErrInvalidItem) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to save item", "error", err, "item_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("item saved", "item_id", item.ID, "tags", len(item.Tags))

	middleware.JSONResponse(w, http.StatusCreated, item)
}

// Get handles GET /items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "item id must be an integer")
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		slog.Error("failed to get item", "error", err, "item_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, item)
}
