package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type memoryEntry struct {
	match     entity.Match
	expiresAt time.Time
}

func (that memoryEntry) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}

// memoryMatch - process-local registry used when redis is disabled.
type memoryMatch struct {
	mu      sync.Mutex
	now     func() time.Time
	matches map[string]memoryEntry
}

func NewMemoryMatchRepository() MatchRepository {
	return newMemoryMatchRepository(time.Now)
}

func newMemoryMatchRepository(now func() time.Time) *memoryMatch {
	return &memoryMatch{
		now:     now,
		matches: make(map[string]memoryEntry),
	}
}

// CreateOrUpdate - also drops every expired entry, so finished games are freed without a later read.
func (that *memoryMatch) CreateOrUpdate(_ context.Context, match *entity.Match) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sweep()

	entry, _ := that.lookup(match.ID)
	entry.match = *match
	that.matches[match.ID] = entry

	return nil
}

func (that *memoryMatch) GetByID(_ context.Context, id string) (*entity.Match, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(id)
	if !ok {
		return nil, apperror.ErrMatchNotFound
	}

	match := entry.match

	return &match, nil
}

func (that *memoryMatch) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(id); !ok {
		return apperror.ErrMatchNotFound
	}

	delete(that.matches, id)

	return nil
}

func (that *memoryMatch) Expire(_ context.Context, id string, ttl time.Duration) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(id)
	if !ok {
		return apperror.ErrMatchNotFound
	}

	entry.expiresAt = that.now().Add(ttl)
	that.matches[id] = entry

	return nil
}

// sweep - must be called with mu held.
func (that *memoryMatch) sweep() {
	now := that.now()
	for id, entry := range that.matches {
		if entry.expired(now) {
			delete(that.matches, id)
		}
	}
}

// lookup - must be called with mu held; drops the entry if it has expired.
func (that *memoryMatch) lookup(id string) (memoryEntry, bool) {
	entry, ok := that.matches[id]
	if !ok {
		return memoryEntry{}, false
	}

	if entry.expired(that.now()) {
		delete(that.matches, id)
		return memoryEntry{}, false
	}

	return entry, true
}
