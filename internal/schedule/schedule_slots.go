package schedule

import (
	"context"

	"nova-hris/internal/attendance"
)

// SlotSource exposes month schedules to the attendance tracker.
type SlotSource struct {
	repo Repository
}

func NewSlotSource(repo Repository) *SlotSource {
	return &SlotSource{repo: repo}
}

func (s *SlotSource) MonthSchedules(ctx context.Context, userID string, year, month int) ([]attendance.ScheduleSlot, error) {
	rows, err := s.repo.ListByUserMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	out := make([]attendance.ScheduleSlot, 0, len(rows))
	for _, r := range rows {
		out = append(out, attendance.ScheduleSlot{
			ID:        r.ID,
			Date:      r.Date,
			TimeIn:    r.TimeIn,
			TimeOut:   r.TimeOut,
			ShiftType: r.ShiftType,
		})
	}
	return out, nil
}
