package attendance

import "context"

// ScheduleSource returns a user's schedules for one month.
type ScheduleSource interface {
	MonthSchedules(ctx context.Context, userID string, year, month int) ([]ScheduleSlot, error)
}

// AdjustmentSource returns approved time adjustments with from <= date <= to.
type AdjustmentSource interface {
	ApprovedAdjustments(ctx context.Context, userID, from, to string) ([]Adjustment, error)
}

type Sources struct {
	Schedules   ScheduleSource
	Adjustments AdjustmentSource
}
