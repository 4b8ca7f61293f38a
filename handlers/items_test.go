// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/testutil"
)

func TestUpsertItem(t *testing.T) {
	env := testutil.NewEnv(t)
	handler := NewItemHandler(env.Items)

	tests := []struct {
		name           string
		body           models.UpsertItemRequest
		expectedStatus int
		expectedTags   []string
	}{
		{
			name:           "new item",
			body:           models.UpsertItemRequest{ID: 620, Name: "Portal 2", Tags: []string{"Puzzle", "Co-op"}},
			expectedStatus: http.StatusCreated,
			expectedTags:   []string{"Puzzle", "Co-op"},
		},
		{
			name:           "tags are cleaned",
			body:           models.UpsertItemRequest{ID: 550, Name: "Left 4 Dead 2", Tags: []string{" Zombies ", "", "Co-op", "Zombies"}},
			expectedStatus: http.StatusCreated,
			expectedTags:   []string{"Zombies", "Co-op"},
		},
		{
			name:           "no tags",
			body:           models.UpsertItemRequest{ID: 400, Name: "Portal"},
			expectedStatus: http.StatusCreated,
			expectedTags:   []string{},
		},
		{
			name:           "missing name",
			body:           models.UpsertItemRequest{ID: 1, Name: "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-positive id",
			body:           models.UpsertItemRequest{ID: -3, Name: "Broken"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/items", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Upsert(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusCreated {
				return
			}

			var item models.Item
			testutil.AssertJSON(t, w, &item)
			if item.ID != tt.body.ID {
				t.Errorf("Expected id %d, got %d", tt.body.ID, item.ID)
			}
			if strings.Join(item.Tags, ",") != strings.Join(tt.expectedTags, ",") {
				t.Errorf("Expected tags %v, got %v", tt.expectedTags, item.Tags)
			}
			if item.Tags == nil {
				t.Error("Expected tags to encode as a list")
			}
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/items", strings.NewReader("[1,2"))
		w := httptest.NewRecorder()

		handler.Upsert(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("update replaces name and tags", func(t *testing.T) {
		body := models.UpsertItemRequest{ID: 620, Name: "Portal 2: Peer Review", Tags: []string{"DLC"}}
		req := testutil.MakeRequest("POST", "/items", body, nil)
		w := httptest.NewRecorder()

		handler.Upsert(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)

		item, err := env.Items.Get(t.Context(), 620)
		if err != nil {
			t.Fatalf("Failed to get item: %v", err)
		}
		if item.Name != "Portal 2: Peer Review" || len(item.Tags) != 1 || item.Tags[0] != "DLC" {
			t.Errorf("Expected updated item, got %+v", item)
		}
	})
}

func TestGetItem(t *testing.T) {
	env := testutil.NewEnv(t)
	handler := NewItemHandler(env.Items)

	testutil.AddTestItem(t, env, 42, "Disco Elysium", "RPG", "Detective")

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"existing item", "42", http.StatusOK},
		{"unknown item", "43", http.StatusNotFound},
		{"non-numeric id", "disco", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/items/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.Get(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var item models.Item
			testutil.AssertJSON(t, w, &item)
			if item.Name != "Disco Elysium" {
				t.Errorf("Expected name 'Disco Elysium', got '%s'", item.Name)
			}
			if len(item.Tags) != 2 {
				t.Errorf("Expected 2 tags, got %v", item.Tags)
			}
		})
	}
}
