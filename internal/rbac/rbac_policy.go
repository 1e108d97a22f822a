package rbac

import "nova-hris/internal/session"

// Resources and actions checked by RBACAuthorize across the API.
const (
	ResourceAttendance = "attendance"
	ResourceLeave      = "leave"
	ResourceOvertime   = "overtime"
	ResourceTimeAdjust = "time_adjustment"
	ResourceSchedule   = "schedule"
	ResourceReport     = "report"
	ResourceEmployee   = "employee"
	ResourceActivity   = "activity"
	ActionRead         = "read"
	ActionWrite        = "write"
	ActionSubmit       = "submit"
	ActionDecide       = "decide"
	ActionManage       = "manage"
)

// DefaultPolicies is the employee baseline. Admin inherits it through
// DefaultGroupings and adds the management rules.
func DefaultPolicies() [][]string {
	employee := session.RoleEmployee
	admin := session.RoleAdmin
	return [][]string{
		{employee, ResourceAttendance, ActionRead},
		{employee, ResourceAttendance, ActionWrite},
		{employee, ResourceLeave, ActionRead},
		{employee, ResourceLeave, ActionSubmit},
		{employee, ResourceOvertime, ActionRead},
		{employee, ResourceOvertime, ActionSubmit},
		{employee, ResourceTimeAdjust, ActionRead},
		{employee, ResourceTimeAdjust, ActionSubmit},
		{employee, ResourceSchedule, ActionRead},
		{employee, ResourceActivity, ActionRead},

		{admin, ResourceLeave, ActionDecide},
		{admin, ResourceOvertime, ActionDecide},
		{admin, ResourceTimeAdjust, ActionDecide},
		{admin, ResourceSchedule, ActionManage},
		{admin, ResourceReport, ActionRead},
		{admin, ResourceEmployee, ActionRead},
		{admin, ResourceEmployee, ActionManage},
	}
}

func DefaultGroupings() [][]string {
	return [][]string{
		{session.RoleAdmin, session.RoleEmployee},
	}
}
