package forms

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// Session is the mutable state of one in-progress conversational form.
// At most one session exists per user; starting a new flow replaces it.
type Session struct {
	Flow   string
	Step   int
	Fields map[string]any
}

// Store abstracts session persistence so deployments can swap the in-memory
// implementation for a durable one.
type Store interface {
	Get(userID int64) (*Session, bool)
	Put(userID int64, s *Session)
	Delete(userID int64)
}

type memoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore builds a Store backed by an expiring in-memory cache.
// Sessions abandoned mid-flow decay after ttl instead of piling up.
func NewMemoryStore(ttl, cleanup time.Duration) Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &memoryStore{cache: cache.New(ttl, cleanup)}
}

func (m *memoryStore) Get(userID int64) (*Session, bool) {
	v, ok := m.cache.Get(sessionKey(userID))
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok
}

func (m *memoryStore) Put(userID int64, s *Session) {
	m.cache.Set(sessionKey(userID), s, cache.DefaultExpiration)
}

func (m *memoryStore) Delete(userID int64) {
	m.cache.Delete(sessionKey(userID))
}

func sessionKey(userID int64) string {
	return "fsm:" + strconv.FormatInt(userID, 10)
}
