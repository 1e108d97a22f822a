package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"nova-hris/internal/attendance"
	"nova-hris/internal/leave"
	"nova-hris/internal/overtime"
	"nova-hris/internal/report"
	reporterrors "nova-hris/internal/report/errors"
	"nova-hris/internal/session"
	"nova-hris/internal/timeadjustment"
	"nova-hris/internal/user"
	"nova-hris/internal/workflow"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	admin    = session.Actor{UID: "a-1", Name: "Admin", Role: session.RoleAdmin}
	employee = session.Actor{UID: "u-1", Name: "Juan Dela Cruz", Role: session.RoleEmployee}
	manila   = time.FixedZone("PHT", 8*60*60)
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "report.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&user.User{},
		&attendance.TimeLog{},
		&leave.Leave{},
		&overtime.Overtime{},
		&timeadjustment.TimeAdjustment{},
	))
	return gdb
}

func envelope(id, userID, status string, created time.Time) workflow.Envelope {
	return workflow.Envelope{
		ID:        id,
		UserID:    userID,
		UserName:  "Juan Dela Cruz",
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func seedRequests(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	leaves := []leave.Leave{
		{Envelope: envelope("L1", "u-1", workflow.StatusPending, base.Add(1*time.Hour)), LeaveType: "Sick Leave (SL)", FromDate: "2024-03-04", ToDate: "2024-03-06", Days: 3},
		{Envelope: envelope("L2", "u-1", workflow.StatusApproved, base.Add(2*time.Hour)), LeaveType: "Vacation Leave (VL)", FromDate: "2024-03-11", ToDate: "2024-03-11", Days: 1},
		{Envelope: envelope("L3", "u-2", workflow.StatusRejected, base.Add(3*time.Hour)), LeaveType: "Maternity Leave", FromDate: "2024-04-01", ToDate: "2024-04-30", Days: 30},
		{Envelope: envelope("L4", "u-2", workflow.StatusPending, base.Add(4*time.Hour)), LeaveType: "Paternity Leave", FromDate: "2024-05-01", ToDate: "2024-05-02", Days: 2},
	}
	require.NoError(t, gdb.Create(&leaves).Error)

	overtimes := []overtime.Overtime{
		{Envelope: envelope("O1", "u-1", workflow.StatusApproved, base.Add(5*time.Hour)), Date: "2024-03-02", Hours: 2.5},
		{Envelope: envelope("O2", "u-2", workflow.StatusApproved, base.Add(6*time.Hour)), Date: "2024-03-03", Hours: 1.25},
		{Envelope: envelope("O3", "u-2", workflow.StatusPending, base.Add(7*time.Hour)), Date: "2024-03-04", Hours: 4},
	}
	require.NoError(t, gdb.Create(&overtimes).Error)

	adjustments := []timeadjustment.TimeAdjustment{
		{Envelope: envelope("T1", "u-1", workflow.StatusRejected, base.Add(8*time.Hour)), Date: "2024-02-28", RequestedTimeIn: "08:00"},
	}
	require.NoError(t, gdb.Create(&adjustments).Error)
}

func newSQLiteService(t *testing.T, gdb *gorm.DB) report.Service {
	t.Helper()
	return report.NewService(
		report.NewRepository(gdb),
		user.NewRepository(gdb),
		attendance.NewRepository(gdb),
		nil,
		time.Minute,
	)
}

func TestService_DashboardCounts_SQLite(t *testing.T) {
	gdb := openSQLite(t)
	seedRequests(t, gdb)
	svc := newSQLiteService(t, gdb)

	got, err := svc.DashboardCounts(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, int64(3), got.Pending)
	assert.Equal(t, int64(3), got.Approved)
	assert.Equal(t, int64(2), got.Rejected)
	assert.Equal(t, int64(8), got.Total)
	assert.InDelta(t, 3.75, got.ApprovedOvertimeHours, 0.001)

	assert.Equal(t, report.KindCounts{Pending: 2, Approved: 1, Rejected: 1, Total: 4}, got.ByKind[leave.Kind])
	assert.Equal(t, report.KindCounts{Pending: 1, Approved: 2, Total: 3}, got.ByKind[overtime.Kind])
	assert.Equal(t, report.KindCounts{Rejected: 1, Total: 1}, got.ByKind[timeadjustment.Kind])
}

func TestService_DashboardCounts_EmptyTables(t *testing.T) {
	svc := newSQLiteService(t, openSQLite(t))

	got, err := svc.DashboardCounts(context.Background(), admin)
	require.NoError(t, err)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.ApprovedOvertimeHours)
	assert.Len(t, got.ByKind, 3)
}

func TestService_RequiresAdmin(t *testing.T) {
	svc := newSQLiteService(t, openSQLite(t))
	ctx := context.Background()

	_, err := svc.DashboardCounts(ctx, employee)
	assert.ErrorIs(t, err, reporterrors.ErrForbidden)

	_, err = svc.AttendanceReport(ctx, employee, "2024-03-01", "2024-03-31")
	assert.ErrorIs(t, err, reporterrors.ErrForbidden)

	_, err = svc.RecentActivity(ctx, employee, 5)
	assert.ErrorIs(t, err, reporterrors.ErrForbidden)
}

type fakeRepo struct {
	calls int
	err   error
}

func (f *fakeRepo) CountByStatus(_ context.Context, table string) (report.KindCounts, error) {
	f.calls++
	if f.err != nil {
		return report.KindCounts{}, f.err
	}
	if table == (leave.Leave{}).TableName() {
		return report.KindCounts{Pending: 1, Total: 1}, nil
	}
	return report.KindCounts{}, nil
}

func (f *fakeRepo) ApprovedOvertimeHours(context.Context) (float64, error) {
	return 2, nil
}

func (f *fakeRepo) Recent(context.Context, string, string, string, int) ([]report.RecentItem, error) {
	return nil, nil
}

func TestService_DashboardCounts_Cache(t *testing.T) {
	ctx := context.Background()
	expected := report.DashboardCounts{
		Pending:               1,
		Total:                 1,
		ApprovedOvertimeHours: 2,
		ByKind: map[string]report.KindCounts{
			leave.Kind:          {Pending: 1, Total: 1},
			overtime.Kind:       {},
			timeadjustment.Kind: {},
		},
	}
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	t.Run("miss computes and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeRepo{}
		svc := report.NewService(repo, nil, nil, rdb, 5*time.Minute)

		mock.ExpectGet(report.DashboardCacheKey).RedisNil()
		mock.ExpectSet(report.DashboardCacheKey, payload, 5*time.Minute).SetVal("OK")

		got, err := svc.DashboardCounts(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
		assert.Equal(t, 3, repo.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit skips the database", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeRepo{err: errors.New("should not be called")}
		svc := report.NewService(repo, nil, nil, rdb, 5*time.Minute)

		mock.ExpectGet(report.DashboardCacheKey).SetVal(string(payload))

		got, err := svc.DashboardCounts(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
		assert.Zero(t, repo.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalidate deletes the key", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		svc := report.NewService(&fakeRepo{}, nil, nil, rdb, 5*time.Minute)

		mock.ExpectDel(report.DashboardCacheKey).SetVal(1)

		require.NoError(t, svc.InvalidateDashboard(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repository error is returned", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		svc := report.NewService(&fakeRepo{err: errors.New("db down")}, nil, nil, rdb, 5*time.Minute)

		mock.ExpectGet(report.DashboardCacheKey).RedisNil()

		_, err := svc.DashboardCounts(ctx, admin)
		assert.EqualError(t, err, "db down")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_InvalidateDashboard_NoRedis(t *testing.T) {
	svc := report.NewService(&fakeRepo{}, nil, nil, nil, 0)
	assert.NoError(t, svc.InvalidateDashboard(context.Background()))
}

func at(day string, hour, minute int) *time.Time {
	d, _ := time.ParseInLocation("2006-01-02", day, manila)
	t := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, manila)
	return &t
}

func seedAttendance(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	users := []user.User{
		{ID: "u-1", Email: "maria@example.com", Name: "Maria Santos", EmployeeID: "EMP002", Department: "HR", Position: "Officer", PasswordHash: "x"},
		{ID: "u-2", Email: "juan@example.com", Name: "Juan Dela Cruz", EmployeeID: "EMP001", Department: "IT", Position: "Engineer", PasswordHash: "x"},
	}
	require.NoError(t, gdb.Create(&users).Error)

	logs := []attendance.TimeLog{
		{ID: attendance.LogID("u-1", "2024-03-04"), UserID: "u-1", Date: "2024-03-04", TimeIn: at("2024-03-04", 8, 30), TimeOut: at("2024-03-04", 17, 45), Status: attendance.StatusCompleted, Source: attendance.SourceClock},
		{ID: attendance.LogID("u-2", "2024-03-04"), UserID: "u-2", Date: "2024-03-04", TimeIn: at("2024-03-04", 7, 55), Status: attendance.StatusActive, Source: attendance.SourceClock},
		{ID: attendance.LogID("u-2", "2024-03-01"), UserID: "u-2", Date: "2024-03-01", TimeIn: at("2024-03-01", 9, 0), TimeOut: at("2024-03-01", 18, 0), Status: attendance.StatusCompleted, Source: attendance.SourceAdjustment},
		{ID: attendance.LogID("u-1", "2024-02-29"), UserID: "u-1", Date: "2024-02-29", TimeIn: at("2024-02-29", 8, 0), Status: attendance.StatusActive, Source: attendance.SourceClock},
	}
	require.NoError(t, gdb.Create(&logs).Error)
}

func TestService_AttendanceReport(t *testing.T) {
	gdb := openSQLite(t)
	seedAttendance(t, gdb)
	svc := newSQLiteService(t, gdb)

	rep, err := svc.AttendanceReport(context.Background(), admin, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", rep.Start)
	assert.Equal(t, "2024-03-31", rep.End)

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "2024-03-01", rep.Rows[0].Date)
	assert.Equal(t, "Juan Dela Cruz", rep.Rows[0].EmployeeName)
	assert.Equal(t, "2024-03-04", rep.Rows[1].Date)
	assert.Equal(t, "Juan Dela Cruz", rep.Rows[1].EmployeeName)
	assert.Equal(t, "IT", rep.Rows[1].Department)
	assert.Nil(t, rep.Rows[1].TimeOut)
	assert.Equal(t, "Maria Santos", rep.Rows[2].EmployeeName)
	assert.Equal(t, "EMP002", rep.Rows[2].EmployeeID)
	assert.Equal(t, attendance.StatusCompleted, rep.Rows[2].Status)
}

func TestService_AttendanceReport_Invalid(t *testing.T) {
	svc := newSQLiteService(t, openSQLite(t))
	ctx := context.Background()

	tests := []struct {
		name       string
		start, end string
		wantErr    error
	}{
		{name: "missing start", start: "", end: "2024-03-31", wantErr: reporterrors.ErrInvalidDate},
		{name: "bad end", start: "2024-03-01", end: "03/31/2024", wantErr: reporterrors.ErrInvalidDate},
		{name: "reversed", start: "2024-03-31", end: "2024-03-01", wantErr: reporterrors.ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AttendanceReport(ctx, admin, tt.start, tt.end)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	rep, err := svc.AttendanceReport(ctx, admin, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, rep.Rows)
}

func TestService_RecentActivity(t *testing.T) {
	gdb := openSQLite(t)
	seedRequests(t, gdb)
	svc := newSQLiteService(t, gdb)

	items, err := svc.RecentActivity(context.Background(), admin, 4)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "T1", items[0].ID)
	assert.Equal(t, timeadjustment.Kind, items[0].Kind)
	assert.Equal(t, "2024-02-28", items[0].Detail)
	assert.Equal(t, "O3", items[1].ID)
	assert.Equal(t, "O2", items[2].ID)
	assert.Equal(t, "L4", items[3].ID)
	assert.Equal(t, "Paternity Leave", items[3].Detail)
	assert.Equal(t, leave.Kind, items[3].Kind)
}
