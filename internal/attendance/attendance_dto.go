package attendance

import (
	"time"

	"nova-hris/internal/shared/timeutil"
)

type TimeLogResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Date        string     `json:"date"`
	TimeIn      *time.Time `json:"time_in"`
	TimeOut     *time.Time `json:"time_out"`
	TimeInText  string     `json:"time_in_text"`
	TimeOutText string     `json:"time_out_text"`
	Status      string     `json:"status"`
	Source      string     `json:"source"`
	HoursWorked string     `json:"hours_worked"`
}

type TodayResponse struct {
	Date        string           `json:"date"`
	Log         *TimeLogResponse `json:"log"`
	HoursWorked string           `json:"hours_worked"`
	RolloverAt  time.Time        `json:"rollover_at"`
}

type ScheduleResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	TimeIn    string `json:"time_in"`
	TimeOut   string `json:"time_out"`
	ShiftType string `json:"shift_type"`
}

type HistoryEntry struct {
	Date        string     `json:"date"`
	TimeIn      *time.Time `json:"time_in"`
	TimeOut     *time.Time `json:"time_out"`
	TimeInText  string     `json:"time_in_text"`
	TimeOutText string     `json:"time_out_text"`
	Status      string     `json:"status"`
	Source      string     `json:"source,omitempty"`
	HoursWorked string     `json:"hours_worked"`
}

func mapToResponse(l *TimeLog, loc *time.Location) *TimeLogResponse {
	if l == nil {
		return nil
	}
	return &TimeLogResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		Date:        l.Date,
		TimeIn:      l.TimeIn,
		TimeOut:     l.TimeOut,
		TimeInText:  timeutil.Format12h(l.TimeIn, loc),
		TimeOutText: timeutil.Format12h(l.TimeOut, loc),
		Status:      l.Status,
		Source:      l.Source,
		HoursWorked: timeutil.HoursWorked(l.TimeIn, l.TimeOut),
	}
}

func newHistoryEntry(date string, in, out *time.Time, status, source string, loc *time.Location) HistoryEntry {
	return HistoryEntry{
		Date:        date,
		TimeIn:      in,
		TimeOut:     out,
		TimeInText:  timeutil.Format12h(in, loc),
		TimeOutText: timeutil.Format12h(out, loc),
		Status:      status,
		Source:      source,
		HoursWorked: timeutil.HoursWorked(in, out),
	}
}

func mapSchedule(s *ScheduleSlot) *ScheduleResponse {
	if s == nil {
		return nil
	}
	return &ScheduleResponse{
		ID:        s.ID,
		Date:      s.Date,
		TimeIn:    s.TimeIn,
		TimeOut:   s.TimeOut,
		ShiftType: s.ShiftType,
	}
}
