package timeadjustment

import (
	"context"
	"database/sql"
	"time"

	"nova-hris/internal/activity"
	"nova-hris/internal/attendance"
	"nova-hris/internal/messaging/kafka"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/workflow"

	"go.uber.org/zap"
)

type Service = workflow.Service[TimeAdjustment, *TimeAdjustment]

func NewService(
	db *sql.DB,
	repo Repository,
	logs attendance.Repository,
	activities activity.Service,
	outbox kafka.OutboxRepository,
	clock timeutil.Clock,
	loc *time.Location,
	cfg workflow.Config,
	logger ...*zap.Logger,
) Service {
	return workflow.NewEngine(db, NewKind(logs, clock, loc), repo, activities, outbox, clock, cfg, logger...)
}

// ApprovedSource feeds approved adjustments into the attendance history.
type ApprovedSource struct {
	repo Repository
}

func NewApprovedSource(repo Repository) *ApprovedSource {
	return &ApprovedSource{repo: repo}
}

func (s *ApprovedSource) ApprovedAdjustments(ctx context.Context, userID, from, to string) ([]attendance.Adjustment, error) {
	items, err := s.repo.ListApproved(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]attendance.Adjustment, 0, len(items))
	for _, a := range items {
		out = append(out, attendance.Adjustment{
			RequestID: a.ID,
			Date:      a.Date,
			TimeIn:    a.RequestedTimeIn,
			TimeOut:   a.RequestedTimeOut,
		})
	}
	return out, nil
}
