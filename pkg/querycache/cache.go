// Package querycache is a keyed store for the last known API response per
// query key. Readers subscribe to keys and re-fetch when an entry is marked
// stale; writers never delete entries directly, eviction is handled by a
// retention sweep over keys nobody subscribes to anymore.
package querycache

import (
	"sync"
	"time"
)

// EventType represents the type of cache event delivered to subscribers.
type EventType string

const (
	// EventSet fires when a key receives a fresh value.
	EventSet EventType = "set"
	// EventInvalidated fires when a key is marked stale. The previous value
	// stays readable; the signal is advisory and tells readers to re-fetch.
	EventInvalidated EventType = "invalidated"
)

// Event is a notification about one cache key.
type Event struct {
	Type EventType
	Key  string
}

// Subscription is an active subscription to one key's events.
type Subscription struct {
	// C delivers events for the subscribed key. Slow consumers drop events
	// rather than block writers.
	C <-chan Event

	cache *Cache
	key   string
	id    int64
	ch    chan Event

	closeOnce sync.Once
}

// Close cancels the subscription. After all subscribers of a key are gone the
// entry becomes eligible for retention eviction.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.cache.unsubscribe(s.key, s.id)
		close(s.ch)
	})
}

type entry struct {
	value      interface{}
	present    bool
	stale      bool
	updatedAt  time.Time
	lastAccess time.Time
	subs       map[int64]*Subscription
}

// Cache is the shared response cache.
type Cache struct {
	mu        sync.RWMutex
	entries   map[string]*entry
	nextSubID int64

	retention time.Duration
	now       func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithRetention sets how long an unsubscribed entry is retained before the
// sweep evicts it.
func WithRetention(d time.Duration) Option {
	return func(c *Cache) {
		c.retention = d
	}
}

// DefaultRetention is the retention window applied when none is configured.
const DefaultRetention = 5 * time.Minute

// New creates an empty cache.
func New(options ...Option) *Cache {
	c := &Cache{
		entries:   map[string]*entry{},
		retention: DefaultRetention,
		now:       time.Now,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Get returns the last value stored for key. The boolean reports presence;
// a stale entry still returns its value.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.present {
		return nil, false
	}

	e.lastAccess = c.now()

	return e.value, true
}

// Stale reports whether key is present but marked stale.
func (c *Cache) Stale(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]

	return ok && e.present && e.stale
}

// Set stores a fresh value for key, clearing any staleness, and notifies
// subscribers.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensureEntry(key)
	e.value = value
	e.present = true
	e.stale = false
	e.updatedAt = c.now()
	e.lastAccess = e.updatedAt

	notify(e, Event{Type: EventSet, Key: key})
}

// Invalidate marks key stale without touching its value. Unknown keys are a
// no-op.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.present {
		return
	}

	e.stale = true

	notify(e, Event{Type: EventInvalidated, Key: key})
}

// Subscribe registers interest in a key. Subscribing to a key nobody has
// written yet is allowed; the first Set will be delivered.
func (c *Cache) Subscribe(key string) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensureEntry(key)

	c.nextSubID++
	sub := &Subscription{
		cache: c,
		key:   key,
		id:    c.nextSubID,
		ch:    make(chan Event, 16),
	}
	sub.C = sub.ch

	e.subs[sub.id] = sub
	e.lastAccess = c.now()

	return sub
}

// Len returns the number of entries currently held, including stale ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *Cache) unsubscribe(key string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return
	}

	delete(e.subs, id)
	e.lastAccess = c.now()
}

// sweep removes entries with no subscribers whose retention window elapsed.
// It returns the number of evicted entries.
func (c *Cache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.retention)
	evicted := 0

	for key, e := range c.entries {
		if len(e.subs) == 0 && e.lastAccess.Before(cutoff) {
			delete(c.entries, key)
			evicted++
		}
	}

	return evicted
}

func (c *Cache) ensureEntry(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{subs: map[int64]*Subscription{}}
		c.entries[key] = e
	}

	return e
}

// notify must be called with c.mu held; sends never block, a slow consumer
// drops the event instead of stalling the writer.
func notify(e *entry, event Event) {
	for _, sub := range e.subs {
		select {
		case sub.ch <- event:
		default:
		}
	}
}
