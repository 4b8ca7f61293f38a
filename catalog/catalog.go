// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package catalog stores item metadata (names and tags) fetched from the
// external catalogue, with an in-memory LRU in front of the database.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yiling-J/theine-go"

	"github.com/danielhkuo/quickly-rate/models"
)

var (
	ErrNotFound    = errors.New("item not found")
	ErrInvalidItem = errors.New("invalid item")
)

const (
	DefaultCacheSize = 1024
	DefaultTTL       = 24 * time.Hour
)

type Repository struct {
	db    *sql.DB
	cache *theine.Cache[int, models.Item]
	size  int
	ttl   time.Duration
	now   func() time.Time
}

type Option func(*Repository)

// WithCacheSize bounds the number of cached items
func WithCacheSize(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.size = n
		}
	}
}

// WithTTL sets how long a cached item is served before rereading the database
func WithTTL(d time.Duration) Option {
	return func(r *Repository) {
		if d > 0 {
			r.ttl = d
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func NewRepository(db *sql.DB, opts ...Option) (*Repository, error) {
	r := &Repository{
		db:   db,
		size: DefaultCacheSize,
		ttl:  DefaultTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	cache, err := theine.NewBuilder[int, models.Item](int64(r.size)).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalogue cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Get returns the item with the given id
func (r *Repository) Get(ctx context.Context, id int) (models.Item, error) {
	if item, ok := r.cache.Get(id); ok {
		return cloneItem(item), nil
	}

	var item models.Item
	var tagsJSON string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, tags FROM item WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &tagsJSON)

	if err == sql.ErrNoRows {
		return models.Item{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to query item %d: %w", id, err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
		return models.Item{}, fmt.Errorf("failed to parse tags for item %d: %w", id, err)
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	r.cache.SetWithTTL(id, item, 1, r.ttl)
	return cloneItem(item), nil
}

// GetMany resolves ids in order. Fails on the first unknown id.
func (r *Repository) GetMany(ctx context.Context, ids []int) ([]models.Item, error) {
	items := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		item, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Upsert stores item, replacing name and tags of an existing row
func (r *Repository) Upsert(ctx context.Context, item models.Item) (models.Item, error) {
	if item.ID <= 0 {
		return models.Item{}, fmt.Errorf("%w: id must be positive", ErrInvalidItem)
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return models.Item{}, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	item.Tags = NormalizeTags(item.Tags)

	tagsJSON, err := json.Marshal(item.Tags)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO item (id, name, tags, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = excluded.name, tags = excluded.tags, updated_at = excluded.updated_at
	`, item.ID, item.Name, string(tagsJSON), r.now())
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to upsert item %d: %w", item.ID, err)
	}

	r.cache.SetWithTTL(item.ID, item, 1, r.ttl)
	return cloneItem(item), nil
}

func (r *Repository) Close() {
	r.cache.Close()
}

// NormalizeTags trims tags, drops empty ones and removes duplicates, keeping first occurrence order
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func cloneItem(item models.Item) models.Item {
	item.Tags = append([]string{}, item.Tags...)
	return item
}
