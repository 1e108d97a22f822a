package timeadjustment

import "time"

type CreateTimeAdjustmentRequest struct {
	Date             string `json:"date" binding:"max=10"`
	RequestedTimeIn  string `json:"requested_time_in" binding:"max=5"`
	RequestedTimeOut string `json:"requested_time_out" binding:"max=5"`
	Reason           string `json:"reason" binding:"max=2000"`
}

type TimesPair struct {
	TimeIn  string `json:"time_in"`
	TimeOut string `json:"time_out"`
}

type TimeAdjustmentResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	UserName    string     `json:"user_name"`
	EmployeeID  string     `json:"employee_id"`
	Date        string     `json:"date"`
	Original    TimesPair  `json:"original"`
	Requested   TimesPair  `json:"requested"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	AdminNote   string     `json:"admin_note"`
	DecidedBy   *string    `json:"decided_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

func mapToResponse(a *TimeAdjustment) TimeAdjustmentResponse {
	return TimeAdjustmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		UserName:    a.UserName,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date,
		Original:    TimesPair{TimeIn: a.OriginalTimeIn, TimeOut: a.OriginalTimeOut},
		Requested:   TimesPair{TimeIn: a.RequestedTimeIn, TimeOut: a.RequestedTimeOut},
		Reason:      a.Reason,
		Status:      a.Status,
		AdminNote:   a.AdminNote,
		DecidedBy:   a.DecidedBy,
		CreatedAt:   a.CreatedAt,
		ProcessedAt: a.ProcessedAt,
	}
}
