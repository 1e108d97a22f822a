package attendance

import "time"

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	// StatusAbsent only appears in history placeholders, never in the table.
	StatusAbsent = "absent"

	SourceClock      = "clock"
	SourceAdjustment = "adjustment"
)

// TimeLog is the single attendance row of one user for one calendar day.
type TimeLog struct {
	ID        string     `gorm:"column:id;type:varchar(80);primaryKey"`
	UserID    string     `gorm:"column:user_id;type:varchar(64);not null;index:idx_time_logs_user_date"`
	Date      string     `gorm:"column:date;type:varchar(10);not null;index:idx_time_logs_user_date;index"`
	TimeIn    *time.Time `gorm:"column:time_in"`
	TimeOut   *time.Time `gorm:"column:time_out"`
	Status    string     `gorm:"column:status;type:varchar(20);not null;default:'active'"`
	Source    string     `gorm:"column:source;type:varchar(20);not null;default:'clock'"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}

// LogID is the deterministic key that keeps one row per user per day.
func LogID(userID, date string) string {
	return userID + "_" + date
}

// ScheduleSlot is the subset of a schedule the tracker shows next to the
// clock.
type ScheduleSlot struct {
	ID        string
	Date      string
	TimeIn    string
	TimeOut   string
	ShiftType string
}

// Adjustment is an approved time correction for one day. Times are HH:MM and
// may be empty when only one side was corrected.
type Adjustment struct {
	RequestID string
	Date      string
	TimeIn    string
	TimeOut   string
}
