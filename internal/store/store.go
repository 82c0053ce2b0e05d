// Package store provides the volatile key-value stores backing the
// session and OTP state machines. The stores are deliberately dumb:
// expiry policy, cooldowns and single-use semantics live in the
// services that own them, so a networked backend can be substituted
// without touching that logic.
package store

import (
	"context"
	"errors"
	"time"

	"scheme-assistant-platform/models"
)

// ErrNotFound is returned when no record exists under the given key.
var ErrNotFound = errors.New("record not found")

// SessionStore persists conversation sessions keyed by session id.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.SessionRecord, error)
	Put(ctx context.Context, rec *models.SessionRecord, ttl time.Duration) error
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions whose last activity predates the cutoff
	// and reports how many were dropped. Purely a memory-reclamation
	// optimization; Get-side staleness checks do not depend on it.
	Sweep(ctx context.Context, staleBefore time.Time) int
}

// OTPStore persists at most one live OTP record per phone number.
type OTPStore interface {
	Get(ctx context.Context, phone string) (*models.OTPRecord, error)
	Put(ctx context.Context, rec *models.OTPRecord, ttl time.Duration) error
	Delete(ctx context.Context, phone string) error

	// Sweep removes records already past their expiry.
	Sweep(ctx context.Context, now time.Time) int
}
