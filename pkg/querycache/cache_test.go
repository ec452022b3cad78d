package querycache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	cache := New()

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("k", "v1")

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v1", got)

	// Overwrite replaces, never accumulates.
	cache.Set("k", "v2")

	got, _ = cache.Get("k")
	assert.Equal(t, "v2", got)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_InvalidateKeepsValue(t *testing.T) {
	cache := New()
	cache.Set("k", "v")

	cache.Invalidate("k")

	assert.True(t, cache.Stale("k"))

	// The stale value stays readable; stale-but-present beats blank.
	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	// A fresh Set clears staleness.
	cache.Set("k", "v2")
	assert.False(t, cache.Stale("k"))
}

func TestCache_InvalidateUnknownKeyIsNoop(t *testing.T) {
	cache := New()

	cache.Invalidate("nope")

	assert.False(t, cache.Stale("nope"))
	assert.Equal(t, 0, cache.Len())
}

func TestCache_SubscribeReceivesEvents(t *testing.T) {
	cache := New()

	sub := cache.Subscribe("k")
	defer sub.Close()

	cache.Set("k", "v")
	cache.Invalidate("k")

	event := <-sub.C
	assert.Equal(t, EventSet, event.Type)
	assert.Equal(t, "k", event.Key)

	event = <-sub.C
	assert.Equal(t, EventInvalidated, event.Type)
}

func TestCache_SubscribeBeforeFirstSet(t *testing.T) {
	cache := New()

	sub := cache.Subscribe("k")
	defer sub.Close()

	// Subscribing does not fabricate a value.
	_, ok := cache.Get("k")
	assert.False(t, ok)

	cache.Set("k", 42)

	event := <-sub.C
	assert.Equal(t, EventSet, event.Type)
}

func TestCache_ClosedSubscriptionStopsDelivery(t *testing.T) {
	cache := New()

	sub := cache.Subscribe("k")
	sub.Close()

	// Close is idempotent.
	sub.Close()

	cache.Set("k", "v")

	_, open := <-sub.C
	assert.False(t, open)
}

func TestCache_SweepEvictsUnsubscribedEntries(t *testing.T) {
	now := time.Now()

	cache := New(WithRetention(time.Minute))
	cache.now = func() time.Time { return now }

	cache.Set("abandoned", "v")

	sub := cache.Subscribe("watched")
	defer sub.Close()
	cache.Set("watched", "v")

	// Within the retention window nothing is evicted.
	assert.Equal(t, 0, cache.sweep())

	cache.now = func() time.Time { return now.Add(2 * time.Minute) }

	assert.Equal(t, 1, cache.sweep())

	_, ok := cache.Get("abandoned")
	assert.False(t, ok)

	// The watched key survives as long as a subscriber exists.
	_, ok = cache.Get("watched")
	assert.True(t, ok)
}

func TestCache_SweepAfterUnsubscribe(t *testing.T) {
	now := time.Now()

	cache := New(WithRetention(time.Minute))
	cache.now = func() time.Time { return now }

	sub := cache.Subscribe("k")
	cache.Set("k", "v")
	sub.Close()

	cache.now = func() time.Time { return now.Add(2 * time.Minute) }

	assert.Equal(t, 1, cache.sweep())
	assert.Equal(t, 0, cache.Len())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "deployments/d1/status", DeploymentStatusKey("d1"))
	assert.Equal(t, "deployments/d1", DeploymentKey("d1"))
	assert.Equal(t, "deployments", DeploymentListKey())
}
