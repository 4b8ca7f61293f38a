// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/quickly-rate/catalog"
	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/db"
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/notify"
	"github.com/danielhkuo/quickly-rate/session"
)

// TestDBURL is an in-memory SQLite database, private to one connection
const TestDBURL = ":memory:"

// Start is the fake clock time every test environment begins at
var Start = time.Date(2025, time.March, 1, 18, 0, 0, 0, time.UTC)

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      TestDBURL,
		DatabaseType:     "sqlite",
		IdentitySalt:     "test-identity-salt",
		SessionDuration:  time.Hour,
		SubscriberBuffer: 16,
		CatalogCacheSize: 64,
		TagsTTL:          time.Hour,
	}
}

// Env bundles the wiring a handler test needs
type Env struct {
	DB    *sql.DB
	Cfg   cliparse.Config
	Clock *clockwork.FakeClock
	Hub   *notify.Hub
	Store *session.Store
	Items *catalog.Repository
}

// NewEnv builds a store on a fake clock, a hub and a catalogue over a fresh
// database. Everything is closed when the test ends.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	cfg := GetTestConfig()
	conn := SetupTestDB(t)
	fc := clockwork.NewFakeClockAt(Start)
	hub := notify.NewHub(notify.WithBuffer(cfg.SubscriberBuffer))
	store := session.NewStore(hub,
		session.WithClock(fc),
		session.WithDuration(cfg.SessionDuration),
	)
	items, err := catalog.NewRepository(conn,
		catalog.WithCacheSize(cfg.CatalogCacheSize),
		catalog.WithTTL(cfg.TagsTTL),
		catalog.WithNow(fc.Now),
	)
	if err != nil {
		t.Fatalf("Failed to create catalogue: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		hub.Close()
		items.Close()
		conn.Close()
	})

	return &Env{DB: conn, Cfg: cfg, Clock: fc, Hub: hub, Store: store, Items: items}
}

// AddTestItem stores an item in the catalogue
func AddTestItem(t *testing.T, env *Env, id int, name string, tags ...string) models.Item {
	t.Helper()

	item, err := env.Items.Upsert(context.Background(), models.Item{ID: id, Name: name, Tags: tags})
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}
	return item
}

// CreateTestSession opens a session over the given candidates and returns its ID
func CreateTestSession(t *testing.T, env *Env, candidates ...models.Item) string {
	t.Helper()

	s, err := env.Store.CreateSession("test-creator", candidates)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return s.ID
}

// WaitEvicted waits until the store no longer holds the session. Expiry
// callbacks run on their own goroutine after the clock is advanced.
func WaitEvicted(t *testing.T, env *Env, sessionID string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := env.Store.GetSession(sessionID); errors.Is(err, session.ErrNotFound) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Session %s was not evicted", sessionID)
}

// Expire moves the clock past the session lifetime and waits for eviction
func Expire(t *testing.T, env *Env, sessionID string) {
	t.Helper()
	env.Clock.Advance(env.Cfg.SessionDuration)
	WaitEvicted(t, env, sessionID)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
