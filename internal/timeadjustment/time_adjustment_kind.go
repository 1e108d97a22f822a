package timeadjustment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nova-hris/internal/activity"
	"nova-hris/internal/attendance"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/sanitize"
	"nova-hris/internal/shared/timeutil"
	timeadjustmenterrors "nova-hris/internal/timeadjustment/errors"
	"nova-hris/internal/workflow"

	"gorm.io/gorm"
)

type hooks struct {
	logs  attendance.Repository
	clock timeutil.Clock
	loc   *time.Location
}

// NewKind wires time adjustments to the attendance log: submissions record
// the logged times as the original, approvals overwrite the log.
func NewKind(logs attendance.Repository, clock timeutil.Clock, loc *time.Location) workflow.Kind[TimeAdjustment, *TimeAdjustment] {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	h := &hooks{logs: logs, clock: clock, loc: loc}

	return workflow.Kind[TimeAdjustment, *TimeAdjustment]{
		Name:      Kind,
		Prepare:   h.prepare,
		Validate:  validate,
		OnApprove: h.onApprove,
		Submitted: func(a *TimeAdjustment) workflow.Summary {
			return workflow.Summary{
				ActivityType: activity.TypeTimeAdjustmentRequest,
				MessageID:    "activity.time_adjustment_submitted",
				Data:         map[string]any{"Date": a.Date},
			}
		},
		Decided: func(a *TimeAdjustment) workflow.Summary {
			return workflow.Summary{
				ActivityType: activity.TypeTimeAdjustmentDecision,
				MessageID:    "activity.time_adjustment_decided",
				Data:         map[string]any{"Date": a.Date},
			}
		},
	}
}

// prepare replaces any client-sent original times with the logged ones.
func (h *hooks) prepare(ctx context.Context, actor session.Actor, a *TimeAdjustment) error {
	a.Date = strings.TrimSpace(a.Date)
	a.OriginalTimeIn, a.OriginalTimeOut = "", ""
	if _, err := timeutil.ParseDate(a.Date, h.loc); err != nil {
		// rejected by validate
		return nil
	}

	row, err := h.logs.FindByID(ctx, attendance.LogID(actor.UID, a.Date))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load time log: %w", err)
	}
	a.OriginalTimeIn = clockOf(row.TimeIn, h.loc)
	a.OriginalTimeOut = clockOf(row.TimeOut, h.loc)
	return nil
}

func clockOf(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(loc).Format(timeutil.ClockLayout)
}

func validate(a *TimeAdjustment) error {
	if a.Date == "" {
		return timeadjustmenterrors.ErrDateRequired
	}
	if _, err := timeutil.ParseDate(a.Date, nil); err != nil {
		return timeadjustmenterrors.ErrInvalidDate
	}

	a.RequestedTimeIn = strings.TrimSpace(a.RequestedTimeIn)
	a.RequestedTimeOut = strings.TrimSpace(a.RequestedTimeOut)
	for _, v := range []string{a.RequestedTimeIn, a.RequestedTimeOut} {
		if v != "" && !timeutil.ValidClock(v) {
			return timeadjustmenterrors.ErrInvalidTime
		}
	}

	changedIn := a.RequestedTimeIn != "" && a.RequestedTimeIn != a.OriginalTimeIn
	changedOut := a.RequestedTimeOut != "" && a.RequestedTimeOut != a.OriginalTimeOut
	if !changedIn && !changedOut {
		return timeadjustmenterrors.ErrNoChange
	}

	a.Reason = sanitize.Text(a.Reason)
	if a.Reason == "" {
		return timeadjustmenterrors.ErrReasonRequired
	}
	return nil
}

// onApprove upserts the day's log with the requested times inside the
// decision transaction.
func (h *hooks) onApprove(ctx context.Context, tx *sql.Tx, a *TimeAdjustment) error {
	logs := h.logs.WithTx(tx)
	id := attendance.LogID(a.UserID, a.Date)

	row, err := logs.FindByID(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load time log: %w", err)
	}

	now := h.clock.Now()
	if row == nil {
		row = &attendance.TimeLog{ID: id, UserID: a.UserID, Date: a.Date, CreatedAt: now}
	}

	if a.RequestedTimeIn != "" {
		t, err := timeutil.At(a.Date, a.RequestedTimeIn, h.loc)
		if err != nil {
			return err
		}
		row.TimeIn = &t
	}
	if a.RequestedTimeOut != "" {
		t, err := timeutil.At(a.Date, a.RequestedTimeOut, h.loc)
		if err != nil {
			return err
		}
		row.TimeOut = &t
	}
	row.Status = attendance.StatusCompleted
	row.Source = attendance.SourceAdjustment
	row.UpdatedAt = now

	if err := logs.Upsert(ctx, row); err != nil {
		return fmt.Errorf("upsert time log: %w", err)
	}
	return nil
}
