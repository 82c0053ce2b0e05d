package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"scheme-assistant-platform/internal/auth"
	"scheme-assistant-platform/internal/store"
	"scheme-assistant-platform/models"
)

// Typed OTP failures. Routes map these to status codes; the human
// message is localized separately.
var (
	ErrOTPNotFound = errors.New("no otp issued for this phone")
	ErrOTPExpired  = errors.New("otp expired")
	ErrOTPInvalid  = errors.New("otp mismatch")
)

// ThrottledError rejects an issuance request made within the cooldown
// window, carrying the remaining wait in seconds.
type ThrottledError struct {
	CooldownSeconds int
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("otp requested too soon, retry in %ds", e.CooldownSeconds)
}

// OTPService drives the per-phone authentication state machine:
// none -> issued -> verified/expired/superseded. A code is consumed at
// most once; after success or expiry the phone reverts to none.
type OTPService struct {
	store    store.OTPStore
	cooldown time.Duration
	expiry   time.Duration
	tokens   *auth.TokenIssuer
	now      func() time.Time
}

func NewOTPService(st store.OTPStore, cooldown, expiry time.Duration, tokens *auth.TokenIssuer) *OTPService {
	return &OTPService{
		store:    st,
		cooldown: cooldown,
		expiry:   expiry,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Request issues a fresh 6-digit code for the phone unless a live
// record is still inside its cooldown window. A prior record past
// cooldown is simply overwritten (superseded).
func (s *OTPService) Request(ctx context.Context, phone string) (*models.OTPIssue, error) {
	now := s.now()

	rec, err := s.store.Get(ctx, phone)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		if remaining := s.cooldown - now.Sub(rec.SentAt); remaining > 0 {
			return nil, &ThrottledError{
				CooldownSeconds: int(math.Ceil(remaining.Seconds())),
			}
		}
	}

	code, err := generateOTP()
	if err != nil {
		return nil, err
	}

	fresh := &models.OTPRecord{
		Phone:     phone,
		OTP:       code,
		SentAt:    now,
		ExpiresAt: now.Add(s.expiry),
	}
	if err := s.store.Put(ctx, fresh, s.expiry); err != nil {
		return nil, err
	}

	return &models.OTPIssue{
		OTP:              code,
		CooldownSeconds:  int(s.cooldown.Seconds()),
		ExpiresInSeconds: int(s.expiry.Seconds()),
	}, nil
}

// Verify consumes a code. The record survives a mismatch so the user
// can retry until expiry; a correct code deletes the record, enforcing
// single use, and yields a session token bound to the phone.
func (s *OTPService) Verify(ctx context.Context, phone, code string) (string, error) {
	rec, err := s.store.Get(ctx, phone)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", err
	}

	if s.now().After(rec.ExpiresAt) {
		if err := s.store.Delete(ctx, phone); err != nil {
			return "", err
		}
		return "", ErrOTPExpired
	}

	if rec.OTP != code {
		return "", ErrOTPInvalid
	}

	if err := s.store.Delete(ctx, phone); err != nil {
		return "", err
	}

	return s.tokens.Issue(phone)
}

// PurgeExpired removes records already past expiry. Verification does
// this lazily anyway; this just reclaims memory sooner.
func (s *OTPService) PurgeExpired(ctx context.Context) int {
	return s.store.Sweep(ctx, s.now())
}

// generateOTP draws a uniformly random zero-padded 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
