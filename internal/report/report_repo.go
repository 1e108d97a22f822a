package report

import (
	"context"

	"nova-hris/internal/leave"
	"nova-hris/internal/overtime"
	"nova-hris/internal/timeadjustment"
	"nova-hris/internal/workflow"

	"gorm.io/gorm"
)

// requestTable describes how a request kind is stored for aggregation.
type requestTable struct {
	kind   string
	table  string
	detail string
	recent int
}

var requestTables = []requestTable{
	{kind: leave.Kind, table: leave.Leave{}.TableName(), detail: "leave_type", recent: 3},
	{kind: overtime.Kind, table: overtime.Overtime{}.TableName(), detail: "date", recent: 2},
	{kind: timeadjustment.Kind, table: timeadjustment.TimeAdjustment{}.TableName(), detail: "date", recent: 2},
}

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	CountByStatus(ctx context.Context, table string) (KindCounts, error)
	ApprovedOvertimeHours(ctx context.Context) (float64, error)
	Recent(ctx context.Context, kind, table, detail string, limit int) ([]RecentItem, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type statusCount struct {
	Status string
	N      int64
}

func (r *repository) CountByStatus(ctx context.Context, table string) (KindCounts, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Table(table).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return KindCounts{}, err
	}

	var out KindCounts
	for _, row := range rows {
		switch row.Status {
		case workflow.StatusPending:
			out.Pending = row.N
		case workflow.StatusApproved:
			out.Approved = row.N
		case workflow.StatusRejected:
			out.Rejected = row.N
		}
		out.Total += row.N
	}
	return out, nil
}

func (r *repository) ApprovedOvertimeHours(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Table(overtime.Overtime{}.TableName()).
		Where("status = ?", workflow.StatusApproved).
		Select("COALESCE(SUM(hours), 0)").
		Row().
		Scan(&total)
	return total, err
}

func (r *repository) Recent(ctx context.Context, kind, table, detail string, limit int) ([]RecentItem, error) {
	var items []RecentItem
	err := r.db.WithContext(ctx).
		Table(table).
		Select("id, user_id, user_name, status, created_at, " + detail + " AS detail").
		Order("created_at DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Kind = kind
	}
	return items, nil
}
