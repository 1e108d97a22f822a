package overtime

import "nova-hris/internal/workflow"

const (
	Kind     = "overtime"
	MaxHours = 24
)

type Overtime struct {
	workflow.Envelope
	Date   string  `gorm:"type:varchar(10);not null"`
	Hours  float64 `gorm:"type:numeric(5,2);not null"`
	Reason string  `gorm:"type:text;not null;default:''"`
}

func (Overtime) TableName() string {
	return "overtime_requests"
}
