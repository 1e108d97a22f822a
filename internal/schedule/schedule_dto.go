package schedule

type UpsertScheduleRequest struct {
	UserID    string `json:"user_id" binding:"required,max=64"`
	Date      string `json:"date" binding:"required,max=10"`
	ShiftType string `json:"shift_type" binding:"required,max=10"`
	TimeIn    string `json:"time_in" binding:"max=5"`
	TimeOut   string `json:"time_out" binding:"max=5"`
}

type ScheduleResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	TimeIn     string `json:"time_in"`
	TimeOut    string `json:"time_out"`
	ShiftType  string `json:"shift_type"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func mapToResponse(s *Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		UserName:   s.UserName,
		EmployeeID: s.EmployeeID,
		Date:       s.Date,
		TimeIn:     s.TimeIn,
		TimeOut:    s.TimeOut,
		ShiftType:  s.ShiftType,
		Year:       s.Year,
		Month:      s.Month,
	}
}
