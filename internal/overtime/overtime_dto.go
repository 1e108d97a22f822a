package overtime

import "time"

type CreateOvertimeRequest struct {
	Date   string  `json:"date" binding:"max=10"`
	Hours  float64 `json:"hours"`
	Reason string  `json:"reason" binding:"max=2000"`
}

type OvertimeResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	UserName    string     `json:"user_name"`
	EmployeeID  string     `json:"employee_id"`
	Date        string     `json:"date"`
	Hours       float64    `json:"hours"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	AdminNote   string     `json:"admin_note"`
	DecidedBy   *string    `json:"decided_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

func mapToResponse(o *Overtime) OvertimeResponse {
	return OvertimeResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		UserName:    o.UserName,
		EmployeeID:  o.EmployeeID,
		Date:        o.Date,
		Hours:       o.Hours,
		Reason:      o.Reason,
		Status:      o.Status,
		AdminNote:   o.AdminNote,
		DecidedBy:   o.DecidedBy,
		CreatedAt:   o.CreatedAt,
		ProcessedAt: o.ProcessedAt,
	}
}
