package leave

import "time"

type CreateLeaveRequest struct {
	Type           string `json:"type" binding:"max=40"`
	From           string `json:"from" binding:"max=10"`
	To             string `json:"to" binding:"max=10"`
	Reason         string `json:"reason" binding:"max=2000"`
	HasAttachment  bool   `json:"has_attachment"`
	AttachmentName string `json:"attachment_name" binding:"max=255"`
	AttachmentType string `json:"attachment_type" binding:"max=120"`
}

type LeaveResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	UserName       string     `json:"user_name"`
	EmployeeID     string     `json:"employee_id"`
	Type           string     `json:"type"`
	From           string     `json:"from"`
	To             string     `json:"to"`
	Days           int        `json:"days"`
	Reason         string     `json:"reason"`
	HasAttachment  bool       `json:"has_attachment"`
	AttachmentName string     `json:"attachment_name,omitempty"`
	AttachmentType string     `json:"attachment_type,omitempty"`
	Status         string     `json:"status"`
	AdminNote      string     `json:"admin_note"`
	DecidedBy      *string    `json:"decided_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
}

func (r CreateLeaveRequest) toEntity() *Leave {
	return &Leave{
		LeaveType:      r.Type,
		FromDate:       r.From,
		ToDate:         r.To,
		Reason:         r.Reason,
		HasAttachment:  r.HasAttachment,
		AttachmentName: r.AttachmentName,
		AttachmentType: r.AttachmentType,
	}
}

func mapToResponse(l *Leave) LeaveResponse {
	return LeaveResponse{
		ID:             l.ID,
		UserID:         l.UserID,
		UserName:       l.UserName,
		EmployeeID:     l.EmployeeID,
		Type:           l.LeaveType,
		From:           l.FromDate,
		To:             l.ToDate,
		Days:           l.Days,
		Reason:         l.Reason,
		HasAttachment:  l.HasAttachment,
		AttachmentName: l.AttachmentName,
		AttachmentType: l.AttachmentType,
		Status:         l.Status,
		AdminNote:      l.AdminNote,
		DecidedBy:      l.DecidedBy,
		CreatedAt:      l.CreatedAt,
		ProcessedAt:    l.ProcessedAt,
	}
}
