package workflow

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Envelope holds the lifecycle columns shared by every request table. Request
// entities embed it.
type Envelope struct {
	ID          string     `gorm:"type:varchar(26);primaryKey"`
	UserID      string     `gorm:"type:varchar(64);not null;index"`
	UserName    string     `gorm:"type:varchar(255);not null;default:''"`
	EmployeeID  string     `gorm:"type:varchar(64);not null;default:''"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNote   string     `gorm:"type:text;not null;default:''"`
	DecidedBy   *string    `gorm:"type:varchar(64)"`
	CreatedAt   time.Time  `gorm:"not null"`
	ProcessedAt *time.Time
	UpdatedAt   time.Time
}

func (e *Envelope) Env() *Envelope { return e }

func (e *Envelope) IsTerminal() bool {
	return e.Status == StatusApproved || e.Status == StatusRejected
}

// Record is satisfied by a pointer to any entity embedding Envelope.
type Record[E any] interface {
	*E
	Env() *Envelope
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
