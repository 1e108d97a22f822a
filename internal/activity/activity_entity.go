package activity

import (
	"encoding/json"
	"time"
)

const (
	TypeClockIn                = "clock_in"
	TypeClockOut               = "clock_out"
	TypeLeaveRequest           = "leave_request"
	TypeOvertimeRequest        = "overtime_request"
	TypeTimeAdjustmentRequest  = "time_adjustment_request"
	TypeLeaveDecision          = "leave_decision"
	TypeOvertimeDecision       = "overtime_decision"
	TypeTimeAdjustmentDecision = "time_adjustment_decision"
)

// Activity rows are append-only.
type Activity struct {
	ID          string          `gorm:"type:varchar(26);primaryKey" bson:"_id" json:"id"`
	UserID      string          `gorm:"type:varchar(64);not null;index:idx_activities_user_timestamp,priority:1" bson:"user_id" json:"user_id"`
	Type        string          `gorm:"type:varchar(40);not null" bson:"type" json:"type"`
	Description string          `gorm:"type:text;not null" bson:"description" json:"description"`
	RequestKind string          `gorm:"type:varchar(30);not null;default:''" bson:"request_kind,omitempty" json:"request_kind,omitempty"`
	RequestID   string          `gorm:"type:varchar(26);not null;default:''" bson:"request_id,omitempty" json:"request_id,omitempty"`
	Snapshot    json.RawMessage `gorm:"type:jsonb" bson:"-" json:"snapshot,omitempty"`
	Timestamp   time.Time       `gorm:"not null;index:idx_activities_user_timestamp,priority:2,sort:desc" bson:"timestamp" json:"timestamp"`
}

func (Activity) TableName() string {
	return "activities"
}

// Entry is what callers hand to Record. Description is rendered from
// MessageID and Data in the request locale.
type Entry struct {
	UserID      string
	Type        string
	MessageID   string
	Data        map[string]any
	RequestKind string
	RequestID   string
	Snapshot    any
	At          time.Time
}
