package report

import "time"

type KindCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

func (k *KindCounts) add(o KindCounts) {
	k.Pending += o.Pending
	k.Approved += o.Approved
	k.Rejected += o.Rejected
	k.Total += o.Total
}

type DashboardCounts struct {
	Pending               int64                 `json:"pending"`
	Approved              int64                 `json:"approved"`
	Rejected              int64                 `json:"rejected"`
	Total                 int64                 `json:"total"`
	ApprovedOvertimeHours float64               `json:"approved_overtime_hours"`
	ByKind                map[string]KindCounts `json:"by_kind"`
}

// Row is one flattened time log line of the attendance report.
type Row struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Department   string     `json:"department"`
	Position     string     `json:"position"`
	Date         string     `json:"date"`
	TimeIn       *time.Time `json:"time_in"`
	TimeOut      *time.Time `json:"time_out"`
	Status       string     `json:"status"`
}

type AttendanceReport struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Rows  []Row  `json:"rows"`
}

type RecentItem struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Detail    string    `json:"detail"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
