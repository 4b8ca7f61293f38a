// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/danielhkuo/quickly-rate/auth"
	"github.com/danielhkuo/quickly-rate/models"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrInactive = errors.New("session is no longer active")
)

const DefaultDuration = 24 * time.Hour

// Publisher receives session events. Implementations must not block.
type Publisher interface {
	Publish(sessionID string, ev models.Event)
}

// Store is the in-memory registry of live voting sessions
type Store struct {
	sessions *xsync.MapOf[string, *entry]
	pub      Publisher
	clock    clockwork.Clock
	duration time.Duration
	newID    func() (string, error)
	logger   *slog.Logger

	closeMu sync.Mutex
	closed  bool
}

// entry owns one session; mu guards the session's votes and the evicted flag
type entry struct {
	mu      sync.RWMutex
	session models.VotingSession
	timer   clockwork.Timer
	evicted bool
}

type Option func(*Store)

func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithDuration sets how long new sessions stay active
func WithDuration(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.duration = d
		}
	}
}

func WithIDGenerator(f func() (string, error)) Option {
	return func(s *Store) { s.newID = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an empty store publishing to pub
func NewStore(pub Publisher, opts ...Option) *Store {
	s := &Store{
		sessions: xsync.NewMapOf[string, *entry](),
		pub:      pub,
		clock:    clockwork.NewRealClock(),
		duration: DefaultDuration,
		newID:    func() (string, error) { return auth.GenerateID(16) },
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Duration returns the lifetime given to new sessions
func (s *Store) Duration() time.Duration {
	return s.duration
}

// Clock returns the time source sessions expire by
func (s *Store) Clock() clockwork.Clock {
	return s.clock
}

// CreateSession registers a new session and arms its expiry timer
func (s *Store) CreateSession(creatorID string, candidates []models.Item) (models.VotingSession, error) {
	id, err := s.newID()
	if err != nil {
		return models.VotingSession{}, err
	}

	now := s.clock.Now()
	e := &entry{
		session: models.VotingSession{
			ID:         id,
			CreatedAt:  now,
			ExpiresAt:  now.Add(s.duration),
			CreatorID:  creatorID,
			Candidates: copyItems(candidates),
			Votes:      []models.Vote{},
		},
	}

	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return models.VotingSession{}, errors.New("session store is closed")
	}

	s.sessions.Store(id, e)

	// Held so the eviction callback cannot observe a nil timer
	e.mu.Lock()
	e.timer = s.clock.AfterFunc(s.duration, func() { s.evict(id, e) })
	snapshot := e.snapshot()
	e.mu.Unlock()

	s.logger.Info("voting session created",
		"session_id", id,
		"creator_id", creatorID,
		"candidates", len(candidates),
		"expires_at", e.session.ExpiresAt,
	)

	return snapshot, nil
}

func (s *Store) lookup(id string) (*entry, bool) {
	return s.sessions.Load(id)
}

// GetSession returns a copy of the session, or ErrNotFound once it is evicted
func (s *Store) GetSession(id string) (models.VotingSession, error) {
	e, ok := s.lookup(id)
	if !ok {
		return models.VotingSession{}, ErrNotFound
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.evicted {
		return models.VotingSession{}, ErrNotFound
	}
	return e.snapshot(), nil
}

// AddVote appends vote to the session and publishes the new results.
// Votes are never deduplicated; every accepted vote counts.
func (s *Store) AddVote(sessionID string, vote models.Vote) error {
	e, ok := s.lookup(sessionID)
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.evicted {
		return ErrNotFound
	}
	now := s.clock.Now()
	if !e.session.IsActive(now) {
		return ErrInactive
	}

	vote.SessionID = sessionID
	if vote.VotedAt.IsZero() {
		vote.VotedAt = now
	}
	e.session.Votes = append(e.session.Votes, vote)

	// Published under the session lock so snapshots reach subscribers in vote order
	results := Aggregate(sessionID, e.session.Candidates, e.session.Votes)
	s.pub.Publish(sessionID, models.Event{
		Type:      models.EventVotesUpdated,
		SessionID: sessionID,
		Results:   &results,
	})

	return nil
}

// GetResults computes the leaderboard. An unknown session yields empty results, not an error.
func (s *Store) GetResults(sessionID string) models.VotingSessionResult {
	e, ok := s.lookup(sessionID)
	if !ok {
		return emptyResult(sessionID)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.evicted {
		return emptyResult(sessionID)
	}
	return Aggregate(sessionID, e.session.Candidates, e.session.Votes)
}

// Len returns the number of sessions currently held
func (s *Store) Len() int {
	return s.sessions.Size()
}

func (s *Store) evict(id string, e *entry) {
	e.mu.Lock()
	if e.evicted {
		e.mu.Unlock()
		return
	}
	e.evicted = true
	e.mu.Unlock()

	// Only remove this entry, never one registered later under the same ID
	s.sessions.Compute(id, func(old *entry, loaded bool) (*entry, bool) {
		return old, !loaded || old == e
	})

	s.logger.Info("voting session expired", "session_id", id)
	s.pub.Publish(id, models.Event{Type: models.EventSessionExpired, SessionID: id})
}

// Close stops every expiry timer and drops all sessions without notifying.
func (s *Store) Close() {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true

	stopped := 0
	s.sessions.Range(func(id string, e *entry) bool {
		e.mu.Lock()
		e.evicted = true
		if e.timer != nil && e.timer.Stop() {
			stopped++
		}
		e.mu.Unlock()
		s.sessions.Delete(id)
		return true
	})

	s.logger.Info("session store closed", "timers_stopped", stopped)
}

// snapshot deep-copies the session. Caller holds e.mu.
func (e *entry) snapshot() models.VotingSession {
	out := e.session
	out.Candidates = copyItems(e.session.Candidates)
	out.Votes = make([]models.Vote, len(e.session.Votes))
	copy(out.Votes, e.session.Votes)
	return out
}

func copyItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Tags = append([]string(nil), it.Tags...)
	}
	return out
}

func emptyResult(sessionID string) models.VotingSessionResult {
	return models.VotingSessionResult{
		SessionID: sessionID,
		Results:   []models.ItemResult{},
	}
}
