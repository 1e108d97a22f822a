package schedule

import "time"

const (
	Shift74     = "7-4"
	Shift85     = "8-5"
	ShiftOff    = "off"
	ShiftCustom = "custom"
)

type preset struct {
	timeIn  string
	timeOut string
}

var presets = map[string]preset{
	Shift74:  {timeIn: "07:00", timeOut: "16:00"},
	Shift85:  {timeIn: "08:00", timeOut: "17:00"},
	ShiftOff: {},
}

type Schedule struct {
	ID         string    `gorm:"column:id;type:varchar(26);primaryKey"`
	UserID     string    `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:uq_schedules_user_date;index:idx_schedules_user_month"`
	UserName   string    `gorm:"column:user_name;type:varchar(255);not null;default:''"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(64);not null;default:''"`
	Date       string    `gorm:"column:date;type:varchar(10);not null;uniqueIndex:uq_schedules_user_date"`
	TimeIn     string    `gorm:"column:time_in;type:varchar(5);not null;default:''"`
	TimeOut    string    `gorm:"column:time_out;type:varchar(5);not null;default:''"`
	ShiftType  string    `gorm:"column:shift_type;type:varchar(10);not null"`
	Year       int       `gorm:"column:year;not null;index:idx_schedules_user_month"`
	Month      int       `gorm:"column:month;not null;index:idx_schedules_user_month"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Schedule) TableName() string {
	return "schedules"
}
