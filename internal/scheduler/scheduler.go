package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// SweepFunc is the unit of scheduled work: it returns how many rows it
// transitioned. The scheduler owns only the timing; the sweep itself is
// injected and callable standalone.
type SweepFunc func(ctx context.Context) (int, error)

// Scheduler runs a SweepFunc on a recurring schedule. With a zero
// interval it fires once a day at midnight UTC; a positive interval
// overrides that for testing and ops tuning.
type Scheduler struct {
	sweep    SweepFunc
	interval time.Duration
	timeout  time.Duration
	logger   *logrus.Logger
}

// New creates a scheduler around the given sweep function
func New(sweep SweepFunc, interval time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		sweep:    sweep,
		interval: interval,
		timeout:  5 * time.Minute,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, invoking the sweep on each tick.
// A failed run is logged and retried on the next tick; it never stops
// the loop.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.WithField("interval", s.describeSchedule()).Info("Expiration sweeper started")

	for {
		timer := time.NewTimer(s.untilNextTick(time.Now().UTC()))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Expiration sweeper stopped")
			return
		case <-timer.C:
		}

		runCtx, cancel := context.WithTimeout(ctx, s.timeout)
		count, err := s.sweep(runCtx)
		cancel()

		if err != nil {
			s.logger.WithError(err).Error("Sweep run failed, will retry on next tick")
			continue
		}

		s.logger.WithField("transitioned", count).Info("Sweep run completed")
	}
}

// untilNextTick computes how long to wait before the next run
func (s *Scheduler) untilNextTick(now time.Time) time.Duration {
	if s.interval > 0 {
		return s.interval
	}
	return NextMidnightUTC(now).Sub(now)
}

func (s *Scheduler) describeSchedule() string {
	if s.interval > 0 {
		return s.interval.String()
	}
	return "daily at midnight UTC"
}

// NextMidnightUTC returns the first midnight UTC strictly after now
func NextMidnightUTC(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
