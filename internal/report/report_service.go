package report

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"nova-hris/internal/attendance"
	reporterrors "nova-hris/internal/report/errors"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/contextutil"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DashboardCacheKey = "report:dashboard"

	// MaxLogsPerUser caps the time logs read per employee for one report.
	MaxLogsPerUser = 1000

	DefaultRecentLimit = 5
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	DashboardCounts(ctx context.Context, admin session.Actor) (DashboardCounts, error)
	InvalidateDashboard(ctx context.Context) error
	AttendanceReport(ctx context.Context, admin session.Actor, start, end string) (AttendanceReport, error)
	RecentActivity(ctx context.Context, admin session.Actor, limit int) ([]RecentItem, error)
}

type service struct {
	repo   Repository
	users  user.Repository
	logs   attendance.Repository
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService builds the admin aggregation service. rdb may be nil, in which
// case dashboard counts are always computed from the database.
func NewService(repo Repository, users user.Repository, logs attendance.Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &service{repo: repo, users: users, logs: logs, rdb: rdb, ttl: ttl, sf: &singleflight.Group{}, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) DashboardCounts(ctx context.Context, admin session.Actor) (DashboardCounts, error) {
	if !admin.IsAdmin() {
		return DashboardCounts{}, reporterrors.ErrForbidden
	}

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, DashboardCacheKey).Result()
		if err == nil {
			var resp DashboardCounts
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DashboardCacheKey, func() (interface{}, error) {
		counts, err := s.computeDashboard(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(counts); err == nil {
				if err := s.rdb.Set(ctx, DashboardCacheKey, data, s.ttl).Err(); err != nil {
					s.log(ctx).Warn("dashboard cache write failed", zap.Error(err))
				}
			}
		}
		return counts, nil
	})
	if err != nil {
		s.log(ctx).Error("dashboard counts failed", zap.Error(err))
		return DashboardCounts{}, err
	}
	return v.(DashboardCounts), nil
}

func (s *service) computeDashboard(ctx context.Context) (DashboardCounts, error) {
	out := DashboardCounts{ByKind: make(map[string]KindCounts, len(requestTables))}

	var all KindCounts
	for _, t := range requestTables {
		counts, err := s.repo.CountByStatus(ctx, t.table)
		if err != nil {
			return DashboardCounts{}, err
		}
		out.ByKind[t.kind] = counts
		all.add(counts)
	}
	out.Pending = all.Pending
	out.Approved = all.Approved
	out.Rejected = all.Rejected
	out.Total = all.Total

	hours, err := s.repo.ApprovedOvertimeHours(ctx)
	if err != nil {
		return DashboardCounts{}, err
	}
	out.ApprovedOvertimeHours = hours
	return out, nil
}

func (s *service) InvalidateDashboard(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, DashboardCacheKey).Err()
}

func (s *service) AttendanceReport(ctx context.Context, admin session.Actor, start, end string) (AttendanceReport, error) {
	log := s.log(ctx)
	if !admin.IsAdmin() {
		return AttendanceReport{}, reporterrors.ErrForbidden
	}

	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	from, err := timeutil.ParseDate(start, nil)
	if err != nil {
		return AttendanceReport{}, reporterrors.ErrInvalidDate
	}
	to, err := timeutil.ParseDate(end, nil)
	if err != nil {
		return AttendanceReport{}, reporterrors.ErrInvalidDate
	}
	if from.After(to) {
		return AttendanceReport{}, reporterrors.ErrInvalidRange
	}

	users, err := s.users.List(ctx, "")
	if err != nil {
		log.Error("report user list failed", zap.Error(err))
		return AttendanceReport{}, err
	}

	rows := make([]Row, 0)
	for _, u := range users {
		logs, err := s.logs.ListByUserRange(ctx, u.ID, start, end, MaxLogsPerUser)
		if err != nil {
			log.Error("report time log query failed", zap.String("user_id", u.ID), zap.Error(err))
			return AttendanceReport{}, err
		}
		for _, l := range logs {
			rows = append(rows, Row{
				EmployeeID:   u.EmployeeID,
				EmployeeName: u.Name,
				Department:   u.Department,
				Position:     u.Position,
				Date:         l.Date,
				TimeIn:       l.TimeIn,
				TimeOut:      l.TimeOut,
				Status:       l.Status,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].EmployeeName < rows[j].EmployeeName
	})

	log.Info("attendance report built",
		zap.String("start", start),
		zap.String("end", end),
		zap.Int("rows", len(rows)),
	)
	return AttendanceReport{Start: start, End: end, Rows: rows}, nil
}

// RecentActivity merges the newest requests of every kind into one feed,
// newest first.
func (s *service) RecentActivity(ctx context.Context, admin session.Actor, limit int) ([]RecentItem, error) {
	if !admin.IsAdmin() {
		return nil, reporterrors.ErrForbidden
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	items := make([]RecentItem, 0, limit)
	for _, t := range requestTables {
		recent, err := s.repo.Recent(ctx, t.kind, t.table, t.detail, t.recent)
		if err != nil {
			s.log(ctx).Error("recent requests query failed", zap.String("kind", t.kind), zap.Error(err))
			return nil, err
		}
		items = append(items, recent...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
