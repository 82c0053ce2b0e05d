package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"scheme-assistant-platform/internal/logger"
)

// Sweeper periodically reclaims memory held by stale sessions and
// expired OTP records. Both stores also expire lazily on access, so
// the schedule only bounds how long dead records linger.
type Sweeper struct {
	scheduler *gocron.Scheduler
	sessions  *SessionManager
	otp       *OTPService
}

func NewSweeper(sessions *SessionManager, otp *OTPService) *Sweeper {
	s := gocron.NewScheduler(time.UTC)
	s.TagsUnique()

	return &Sweeper{
		scheduler: s,
		sessions:  sessions,
		otp:       otp,
	}
}

// Start schedules the sweep at the given interval and runs the
// scheduler in the background.
func (s *Sweeper) Start(interval time.Duration) error {
	_, err := s.scheduler.Every(interval).Tag("state-sweep").Do(s.sweep)
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop halts the scheduler.
func (s *Sweeper) Stop() {
	s.scheduler.Stop()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	staleSessions := s.sessions.Sweep(ctx)
	expiredOTPs := s.otp.PurgeExpired(ctx)

	if staleSessions > 0 || expiredOTPs > 0 {
		logger.Debug("state sweep completed",
			"stale_sessions", staleSessions,
			"expired_otps", expiredOTPs,
		)
	}
}
