package events

import "time"

const AttendanceTopic = "hris.attendance.v1"

const (
	EventClockedIn  = "attendance.clocked_in"
	EventClockedOut = "attendance.clocked_out"
)

type AttendanceClockedEvent struct {
	EventType  string           `json:"event_type"`
	TimeLogID  string           `json:"time_log_id"`
	UserID     string           `json:"user_id"`
	Date       string           `json:"date"`
	Activity   ActivitySnapshot `json:"activity"`
	OccurredAt time.Time        `json:"occurred_at"`
}
