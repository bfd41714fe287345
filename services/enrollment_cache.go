package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/yeremiapane/palmpay-kiosk/utils"
)

// EnrollmentTTL is how long an enrollment QR token stays redeemable.
const EnrollmentTTL = 10 * time.Minute

type EnrollmentEntry struct {
	PalmFeatures json.RawMessage
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// EnrollmentCache is the process-local store behind the enrollment QR flow.
// Tokens are deleted either on the first read after their expiry or by the
// periodic sweep, whichever fires first; both paths are idempotent.
type EnrollmentCache struct {
	// Now is the clock used for expiry checks. Tests replace it.
	Now func() time.Time
	// Interval between sweep passes.
	Interval time.Duration
	TTL      time.Duration

	mu       sync.Mutex
	entries  map[string]EnrollmentEntry
	stopChan chan struct{}
}

func NewEnrollmentCache() *EnrollmentCache {
	return &EnrollmentCache{
		Now:      time.Now,
		Interval: 1 * time.Minute,
		TTL:      EnrollmentTTL,
		entries:  make(map[string]EnrollmentEntry),
		stopChan: make(chan struct{}),
	}
}

// Put stores a feature payload under a fresh 128-bit token and returns the
// token with its entry.
func (ec *EnrollmentCache) Put(features json.RawMessage) (string, EnrollmentEntry, error) {
	token, err := utils.GenerateToken(16)
	if err != nil {
		return "", EnrollmentEntry{}, err
	}

	now := ec.Now()
	entry := EnrollmentEntry{
		PalmFeatures: features,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ec.TTL),
	}

	ec.mu.Lock()
	ec.entries[token] = entry
	ec.mu.Unlock()

	return token, entry, nil
}

// Get looks up a token. expired reports that the token existed but its expiry
// has passed; the entry is deleted in that case, so a second read reports a
// plain miss.
func (ec *EnrollmentCache) Get(token string) (entry EnrollmentEntry, ok bool, expired bool) {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	entry, ok = ec.entries[token]
	if !ok {
		return EnrollmentEntry{}, false, false
	}
	if !ec.Now().Before(entry.ExpiresAt) {
		delete(ec.entries, token)
		return entry, false, true
	}
	return entry, true, false
}

// Delete removes a token. No-op when the key is already gone.
func (ec *EnrollmentCache) Delete(token string) {
	ec.mu.Lock()
	delete(ec.entries, token)
	ec.mu.Unlock()
}

// Len reports the number of live entries, expired or not.
func (ec *EnrollmentCache) Len() int {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return len(ec.entries)
}

// Start launches the background sweep. Callers should defer Stop.
func (ec *EnrollmentCache) Start() {
	go func() {
		ticker := time.NewTicker(ec.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ec.Sweep()
			case <-ec.stopChan:
				return
			}
		}
	}()
}

func (ec *EnrollmentCache) Stop() {
	close(ec.stopChan)
}

// Sweep drops every entry past its expiry.
func (ec *EnrollmentCache) Sweep() {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	now := ec.Now()
	for token, entry := range ec.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(ec.entries, token)
		}
	}
}
