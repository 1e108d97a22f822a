package leave

import (
	"strings"

	"nova-hris/internal/activity"
	leaveerrors "nova-hris/internal/leave/errors"
	"nova-hris/internal/shared/sanitize"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/workflow"
)

// NewKind describes leave requests to the workflow engine.
func NewKind() workflow.Kind[Leave, *Leave] {
	return workflow.Kind[Leave, *Leave]{
		Name:     Kind,
		Validate: validate,
		Submitted: func(l *Leave) workflow.Summary {
			return workflow.Summary{
				ActivityType: activity.TypeLeaveRequest,
				MessageID:    "activity.leave_submitted",
				Data:         map[string]any{"Type": l.LeaveType, "Days": l.Days},
			}
		},
		Decided: func(l *Leave) workflow.Summary {
			return workflow.Summary{
				ActivityType: activity.TypeLeaveDecision,
				MessageID:    "activity.leave_decided",
				Data:         map[string]any{"Type": l.LeaveType, "From": l.FromDate, "To": l.ToDate},
			}
		},
	}
}

// normalizeType matches the submitted label case-insensitively.
func normalizeType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, t := range Types {
		if strings.EqualFold(t, s) {
			return t, true
		}
	}
	return "", false
}

func validate(l *Leave) error {
	leaveType, ok := normalizeType(l.LeaveType)
	if !ok {
		return leaveerrors.ErrInvalidLeaveType
	}
	l.LeaveType = leaveType

	l.FromDate = strings.TrimSpace(l.FromDate)
	l.ToDate = strings.TrimSpace(l.ToDate)
	if l.FromDate == "" || l.ToDate == "" {
		return leaveerrors.ErrDatesRequired
	}

	from, err := timeutil.ParseDate(l.FromDate, nil)
	if err != nil {
		return leaveerrors.ErrInvalidDate
	}
	to, err := timeutil.ParseDate(l.ToDate, nil)
	if err != nil {
		return leaveerrors.ErrInvalidDate
	}
	if to.Before(from) {
		return leaveerrors.ErrInvalidDateRange
	}

	l.Reason = sanitize.Text(l.Reason)
	if l.Reason == "" {
		return leaveerrors.ErrReasonRequired
	}

	if l.HasAttachment {
		l.AttachmentName = sanitize.Text(l.AttachmentName)
		l.AttachmentType = strings.TrimSpace(l.AttachmentType)
		if l.AttachmentName == "" {
			return leaveerrors.ErrAttachmentNameRequired
		}
	} else {
		l.AttachmentName = ""
		l.AttachmentType = ""
	}

	// fixed at submission, never recomputed
	l.Days = timeutil.InclusiveDays(from, to)
	return nil
}
