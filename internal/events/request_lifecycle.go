package events

import "time"

const RequestLifecycleTopic = "hris.request.lifecycle.v1"

const (
	EventRequestSubmitted = "request.submitted"
	EventRequestDecided   = "request.decided"
)

// ActivitySnapshot is the activity row written in the same transaction as the
// event, carried so consumers can build read models without a lookup.
type ActivitySnapshot struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	RequestKind string    `json:"request_kind,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type RequestSubmittedEvent struct {
	EventType  string           `json:"event_type"`
	Kind       string           `json:"kind"`
	RequestID  string           `json:"request_id"`
	UserID     string           `json:"user_id"`
	UserName   string           `json:"user_name"`
	EmployeeID string           `json:"employee_id"`
	Activity   ActivitySnapshot `json:"activity"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type RequestDecidedEvent struct {
	EventType  string           `json:"event_type"`
	Kind       string           `json:"kind"`
	RequestID  string           `json:"request_id"`
	UserID     string           `json:"user_id"`
	Status     string           `json:"status"`
	PrevStatus string           `json:"prev_status"`
	DecidedBy  string           `json:"decided_by"`
	AdminNote  string           `json:"admin_note,omitempty"`
	Activity   ActivitySnapshot `json:"activity"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// Envelope is decoded first to route a message by event_type.
type Envelope struct {
	EventType string `json:"event_type"`
}
