package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"scheme-assistant-platform/internal/store"
	"scheme-assistant-platform/models"
)

// SessionManager owns the session lifecycle: absent -> active ->
// expired, where an expired session collapses back to absent on the
// next access and is transparently recreated. Staleness is never
// surfaced as an error.
type SessionManager struct {
	store      store.SessionStore
	timeout    time.Duration
	maxHistory int
	now        func() time.Time
}

func NewSessionManager(st store.SessionStore, timeout time.Duration, maxHistory int) *SessionManager {
	return &SessionManager{
		store:      st,
		timeout:    timeout,
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// GetOrCreate returns the active session for id, resetting it first if
// it has gone stale. An empty id gets a server-issued one.
func (m *SessionManager) GetOrCreate(ctx context.Context, id string) (*models.SessionRecord, error) {
	if id == "" {
		id = uuid.NewString()
	}

	rec, err := m.store.Get(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return m.createFresh(ctx, id)
	case err != nil:
		return nil, err
	}

	if m.now().Sub(rec.LastActivity) > m.timeout {
		// Stale: discard and start over rather than merging into
		// expired state.
		if err := m.store.Delete(ctx, id); err != nil {
			return nil, err
		}
		return m.createFresh(ctx, id)
	}

	return rec, nil
}

// Update merges a context patch into the session and refreshes its
// last-activity timestamp. It routes through GetOrCreate so an expired
// session is reset before the patch lands.
func (m *SessionManager) Update(ctx context.Context, id string, patch models.ContextPatch) (*models.SessionRecord, error) {
	rec, err := m.GetOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Language != "" {
		rec.Language = patch.Language
	}
	for _, schemeID := range patch.MentionedSchemeIDs {
		rec.MentionedSchemeIDs = appendMention(rec.MentionedSchemeIDs, schemeID, m.maxHistory)
	}
	for k, v := range patch.UserAttributes {
		if rec.UserAttributes == nil {
			rec.UserAttributes = make(map[string]string)
		}
		rec.UserAttributes[k] = v
	}

	rec.LastActivity = m.now()
	if err := m.store.Put(ctx, rec, m.timeout); err != nil {
		return nil, err
	}
	return rec, nil
}

// Sweep drops every currently-stale session. Safe to call at any
// time; it has no observable effect on GetOrCreate behavior.
func (m *SessionManager) Sweep(ctx context.Context) int {
	return m.store.Sweep(ctx, m.now().Add(-m.timeout))
}

func (m *SessionManager) createFresh(ctx context.Context, id string) (*models.SessionRecord, error) {
	now := m.now()
	rec := &models.SessionRecord{
		SessionID:          id,
		CreatedAt:          now,
		LastActivity:       now,
		MentionedSchemeIDs: []string{},
		UserAttributes:     make(map[string]string),
	}
	if err := m.store.Put(ctx, rec, m.timeout); err != nil {
		return nil, err
	}
	return rec, nil
}

// appendMention keeps the mentioned-scheme history ordered,
// de-duplicated and bounded, dropping the oldest entry when full.
func appendMention(history []string, id string, max int) []string {
	for _, existing := range history {
		if existing == id {
			return history
		}
	}
	history = append(history, id)
	if max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}
	return history
}
