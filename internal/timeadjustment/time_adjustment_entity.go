package timeadjustment

import "nova-hris/internal/workflow"

const Kind = "time_adjustment"

// TimeAdjustment asks to correct the clock times of one day. Times are HH:MM
// in the app timezone; an empty requested side means "leave as recorded".
type TimeAdjustment struct {
	workflow.Envelope
	Date             string `gorm:"type:varchar(10);not null;index"`
	OriginalTimeIn   string `gorm:"type:varchar(5);not null;default:''"`
	OriginalTimeOut  string `gorm:"type:varchar(5);not null;default:''"`
	RequestedTimeIn  string `gorm:"type:varchar(5);not null;default:''"`
	RequestedTimeOut string `gorm:"type:varchar(5);not null;default:''"`
	Reason           string `gorm:"type:text;not null;default:''"`
}

func (TimeAdjustment) TableName() string {
	return "time_adjustment_requests"
}
