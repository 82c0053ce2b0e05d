package store

import (
	"context"
	"sync"
	"time"

	"scheme-assistant-platform/models"
)

// MemorySessionStore is the default in-process session store. All
// access goes through a RWMutex: session state is the shared mutable
// part of the system and handlers run concurrently.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.SessionRecord
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*models.SessionRecord),
	}
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*models.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySession(rec), nil
}

func (s *MemorySessionStore) Put(_ context.Context, rec *models.SessionRecord, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[rec.SessionID] = copySession(rec)
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// copySession clones a record including its map and slice fields.
// Callers mutate returned records outside the store's mutex, so a
// shallow copy would hand two goroutines the same backing map.
func copySession(rec *models.SessionRecord) *models.SessionRecord {
	cp := *rec
	if rec.MentionedSchemeIDs != nil {
		cp.MentionedSchemeIDs = make([]string, len(rec.MentionedSchemeIDs))
		copy(cp.MentionedSchemeIDs, rec.MentionedSchemeIDs)
	}
	if rec.UserAttributes != nil {
		cp.UserAttributes = make(map[string]string, len(rec.UserAttributes))
		for k, v := range rec.UserAttributes {
			cp.UserAttributes[k] = v
		}
	}
	return &cp
}

func (s *MemorySessionStore) Sweep(_ context.Context, staleBefore time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, rec := range s.sessions {
		if rec.LastActivity.Before(staleBefore) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// MemoryOTPStore is the default in-process OTP store, keyed by phone
// number with at most one live record per phone.
type MemoryOTPStore struct {
	mu      sync.RWMutex
	records map[string]*models.OTPRecord
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{
		records: make(map[string]*models.OTPRecord),
	}
}

func (s *MemoryOTPStore) Get(_ context.Context, phone string) (*models.OTPRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[phone]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryOTPStore) Put(_ context.Context, rec *models.OTPRecord, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records[rec.Phone] = &cp
	return nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, phone)
	return nil
}

func (s *MemoryOTPStore) Sweep(_ context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for phone, rec := range s.records {
		if now.After(rec.ExpiresAt) {
			delete(s.records, phone)
			removed++
		}
	}
	return removed
}
