package overtime

import (
	"math"
	"strconv"
	"strings"

	"nova-hris/internal/activity"
	overtimeerrors "nova-hris/internal/overtime/errors"
	"nova-hris/internal/shared/sanitize"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/workflow"
)

func NewKind() workflow.Kind[Overtime, *Overtime] {
	return workflow.Kind[Overtime, *Overtime]{
		Name:     Kind,
		Validate: validate,
		Submitted: func(o *Overtime) workflow.Summary {
			return workflow.Summary{
				ActivityType: activity.TypeOvertimeRequest,
				MessageID:    "activity.overtime_submitted",
				Data:         map[string]any{"Hours": formatHours(o.Hours), "Date": o.Date},
			}
		},
		Decided: func(o *Overtime) workflow.Summary {
			return workflow.Summary{
				ActivityType: activity.TypeOvertimeDecision,
				MessageID:    "activity.overtime_decided",
				Data:         map[string]any{"Date": o.Date, "Hours": formatHours(o.Hours)},
			}
		},
	}
}

// formatHours drops trailing zeros so 2.50 reads "2.5".
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func validate(o *Overtime) error {
	o.Date = strings.TrimSpace(o.Date)
	if o.Date == "" {
		return overtimeerrors.ErrDateRequired
	}
	if _, err := timeutil.ParseDate(o.Date, nil); err != nil {
		return overtimeerrors.ErrInvalidDate
	}

	if math.IsNaN(o.Hours) {
		return overtimeerrors.ErrInvalidHours
	}
	// stored as NUMERIC(5,2); bounds apply to the stored value
	o.Hours = math.Round(o.Hours*100) / 100
	if o.Hours <= 0 || o.Hours > MaxHours {
		return overtimeerrors.ErrInvalidHours
	}

	o.Reason = sanitize.Text(o.Reason)
	if o.Reason == "" {
		return overtimeerrors.ErrReasonRequired
	}
	return nil
}
