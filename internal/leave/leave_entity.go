package leave

import "nova-hris/internal/workflow"

const Kind = "leave"

// Types offered by the leave form.
var Types = []string{
	"Vacation Leave (VL)",
	"Sick Leave (SL)",
	"Leave Without Pay (LWOP)",
	"Maternity Leave",
	"Paternity Leave",
}

type Leave struct {
	workflow.Envelope
	LeaveType      string `gorm:"type:varchar(40);not null"`
	FromDate       string `gorm:"type:varchar(10);not null"`
	ToDate         string `gorm:"type:varchar(10);not null"`
	Days           int    `gorm:"not null"`
	Reason         string `gorm:"type:text;not null;default:''"`
	HasAttachment  bool   `gorm:"not null;default:false"`
	AttachmentName string `gorm:"type:varchar(255);not null;default:''"`
	AttachmentType string `gorm:"type:varchar(120);not null;default:''"`
}

func (Leave) TableName() string {
	return "leave_requests"
}
