package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scheme-assistant-platform/internal/auth"
	"scheme-assistant-platform/internal/store"
)

const testTokenSecret = "0123456789abcdef0123456789abcdef"

func newTestOTPService(t *testing.T) (*OTPService, *time.Time) {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(testTokenSecret, time.Hour)
	require.NoError(t, err)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s := NewOTPService(store.NewMemoryOTPStore(), 30*time.Second, 300*time.Second, issuer)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestRequestIssuesSixDigitCode(t *testing.T) {
	s, _ := newTestOTPService(t)

	issue, err := s.Request(context.Background(), "9876543210")
	require.NoError(t, err)
	require.Len(t, issue.OTP, 6)
	for _, r := range issue.OTP {
		require.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", issue.OTP)
	}
	require.Equal(t, 30, issue.CooldownSeconds)
	require.Equal(t, 300, issue.ExpiresInSeconds)
}

func TestRequestThrottledInsideCooldown(t *testing.T) {
	s, now := newTestOTPService(t)
	ctx := context.Background()

	_, err := s.Request(ctx, "9876543210")
	require.NoError(t, err)

	*now = now.Add(10 * time.Second)
	_, err = s.Request(ctx, "9876543210")
	var throttled *ThrottledError
	require.ErrorAs(t, err, &throttled)
	require.Equal(t, 20, throttled.CooldownSeconds)

	// Other phones are unaffected.
	_, err = s.Request(ctx, "9123456789")
	require.NoError(t, err)
}

func TestRequestSupersedesAfterCooldown(t *testing.T) {
	s, now := newTestOTPService(t)
	ctx := context.Background()

	first, err := s.Request(ctx, "9876543210")
	require.NoError(t, err)

	*now = now.Add(31 * time.Second)
	second, err := s.Request(ctx, "9876543210")
	require.NoError(t, err)

	// The superseded code is dead even if it happens to differ.
	if first.OTP != second.OTP {
		_, err = s.Verify(ctx, "9876543210", first.OTP)
		require.ErrorIs(t, err, ErrOTPInvalid)
	}
	token, err := s.Verify(ctx, "9876543210", second.OTP)
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestVerifySingleUse(t *testing.T) {
	s, _ := newTestOTPService(t)
	ctx := context.Background()

	issue, err := s.Request(ctx, "9876543210")
	require.NoError(t, err)

	token, err := s.Verify(ctx, "9876543210", issue.OTP)
	require.NoError(t, err)

	claims, err := s.tokens.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "9876543210", claims.Phone)

	_, err = s.Verify(ctx, "9876543210", issue.OTP)
	require.ErrorIs(t, err, ErrOTPNotFound, "a consumed code must not verify twice")
}

func TestVerifyMismatchKeepsRecord(t *testing.T) {
	s, _ := newTestOTPService(t)
	ctx := context.Background()

	issue, err := s.Request(ctx, "9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == issue.OTP {
		wrong = "000001"
	}
	_, err = s.Verify(ctx, "9876543210", wrong)
	require.ErrorIs(t, err, ErrOTPInvalid)

	// The correct code still works after a failed attempt.
	token, err := s.Verify(ctx, "9876543210", issue.OTP)
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestVerifyExpiredCodeDiscarded(t *testing.T) {
	s, now := newTestOTPService(t)
	ctx := context.Background()

	issue, err := s.Request(ctx, "9876543210")
	require.NoError(t, err)

	*now = now.Add(301 * time.Second)
	_, err = s.Verify(ctx, "9876543210", issue.OTP)
	require.ErrorIs(t, err, ErrOTPExpired)

	// Expiry consumed the record: the next failure mode is not-found.
	_, err = s.Verify(ctx, "9876543210", issue.OTP)
	require.ErrorIs(t, err, ErrOTPNotFound)
}

func TestVerifyUnknownPhone(t *testing.T) {
	s, _ := newTestOTPService(t)

	_, err := s.Verify(context.Background(), "9000000000", "123456")
	require.ErrorIs(t, err, ErrOTPNotFound)
}

func TestPurgeExpired(t *testing.T) {
	s, now := newTestOTPService(t)
	ctx := context.Background()

	_, err := s.Request(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, 0, s.PurgeExpired(ctx))

	*now = now.Add(301 * time.Second)
	require.Equal(t, 1, s.PurgeExpired(ctx))

	_, err = s.Verify(ctx, "9876543210", "123456")
	require.ErrorIs(t, err, ErrOTPNotFound)
}
