package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache(start time.Time) (*EnrollmentCache, *time.Time) {
	current := start
	cache := NewEnrollmentCache()
	cache.Now = func() time.Time { return current }
	return cache, &current
}

func TestEnrollmentPutAndGet(t *testing.T) {
	cache, _ := newTestCache(time.Now())

	features := json.RawMessage(`{"leftPalm":"abc","rightPalm":"def"}`)
	token, entry, err := cache.Put(features)
	assert.NoError(t, err)
	assert.Len(t, token, 32) // 128-bit hex
	assert.Equal(t, EnrollmentTTL, entry.ExpiresAt.Sub(entry.CreatedAt))

	got, ok, expired := cache.Get(token)
	assert.True(t, ok)
	assert.False(t, expired)
	assert.Equal(t, features, got.PalmFeatures)
}

func TestEnrollmentRetrievableUntilExpiry(t *testing.T) {
	cache, current := newTestCache(time.Now())

	token, _, err := cache.Put(json.RawMessage(`{}`))
	assert.NoError(t, err)

	// one instant before expiry the token is still live
	*current = current.Add(EnrollmentTTL - time.Nanosecond)
	_, ok, expired := cache.Get(token)
	assert.True(t, ok)
	assert.False(t, expired)

	// at the expiry instant the first read reports expired and deletes
	*current = current.Add(time.Nanosecond)
	_, ok, expired = cache.Get(token)
	assert.False(t, ok)
	assert.True(t, expired)

	// second read is a plain miss
	_, ok, expired = cache.Get(token)
	assert.False(t, ok)
	assert.False(t, expired)
}

func TestEnrollmentSweep(t *testing.T) {
	cache, current := newTestCache(time.Now())

	tokenOld, _, _ := cache.Put(json.RawMessage(`{"n":1}`))
	*current = current.Add(EnrollmentTTL / 2)
	tokenNew, _, _ := cache.Put(json.RawMessage(`{"n":2}`))

	*current = current.Add(EnrollmentTTL/2 + time.Second)
	cache.Sweep()

	assert.Equal(t, 1, cache.Len())
	_, ok, expired := cache.Get(tokenOld)
	assert.False(t, ok)
	assert.False(t, expired) // swept away, indistinguishable from unknown
	_, ok, _ = cache.Get(tokenNew)
	assert.True(t, ok)
}

func TestEnrollmentDeleteIdempotent(t *testing.T) {
	cache, _ := newTestCache(time.Now())

	token, _, _ := cache.Put(json.RawMessage(`{}`))
	cache.Delete(token)
	// second delete of the same key must be a no-op
	cache.Delete(token)
	assert.Equal(t, 0, cache.Len())
}
