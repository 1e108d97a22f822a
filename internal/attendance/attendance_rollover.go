package attendance

import (
	"context"
	"time"

	"nova-hris/internal/shared/timeutil"

	"go.uber.org/zap"
)

// RolloverHook runs once per local midnight. Errors are logged, the ticker
// keeps going.
type RolloverHook func(ctx context.Context, day string) error

// MidnightTicker fires its hooks at every local midnight and re-arms itself.
type MidnightTicker struct {
	clock  timeutil.Clock
	loc    *time.Location
	hooks  []RolloverHook
	after  func(time.Duration) <-chan time.Time
	logger *zap.Logger
}

func NewMidnightTicker(clock timeutil.Clock, loc *time.Location, hooks []RolloverHook, logger ...*zap.Logger) *MidnightTicker {
	l := zap.L().Named("attendance.rollover")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.rollover")
	}
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &MidnightTicker{clock: clock, loc: loc, hooks: hooks, after: time.After, logger: l}
}

// Run blocks until ctx is done.
func (m *MidnightTicker) Run(ctx context.Context) {
	for {
		now := m.clock.Now()
		next := timeutil.NextMidnight(now, m.loc)
		wait := next.Sub(now)
		m.logger.Debug("rollover armed", zap.Time("at", next), zap.Duration("in", wait))

		select {
		case <-ctx.Done():
			return
		case <-m.after(wait):
			m.Fire(ctx, timeutil.DateKey(next, m.loc))
		}
	}
}

// Fire runs every hook for day.
func (m *MidnightTicker) Fire(ctx context.Context, day string) {
	for i, hook := range m.hooks {
		if err := hook(ctx, day); err != nil {
			m.logger.Warn("rollover hook failed", zap.Int("hook", i), zap.String("day", day), zap.Error(err))
		}
	}
	m.logger.Info("rollover done", zap.String("day", day))
}
