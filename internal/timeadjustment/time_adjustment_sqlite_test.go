package timeadjustment_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"nova-hris/internal/activity"
	"nova-hris/internal/attendance"
	"nova-hris/internal/events"
	"nova-hris/internal/messaging/kafka"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/timeadjustment"
	"nova-hris/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type failingUpsert struct {
	attendance.Repository
}

func (f failingUpsert) WithTx(tx *sql.Tx) attendance.Repository {
	return failingUpsert{f.Repository.WithTx(tx)}
}

func (failingUpsert) Upsert(context.Context, *attendance.TimeLog) error {
	return errors.New("time log write failed")
}

type stack struct {
	gdb     *gorm.DB
	repo    timeadjustment.Repository
	logs    attendance.Repository
	service timeadjustment.Service
}

func openStack(t *testing.T, wrap func(attendance.Repository) attendance.Repository) *stack {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "hris.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&timeadjustment.TimeAdjustment{},
		&attendance.TimeLog{},
		&activity.Activity{},
		&kafka.OutboxEvent{},
	))
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	clock := timeutil.FixedClock{T: now}
	logs := attendance.NewRepository(gdb)
	hookLogs := logs
	if wrap != nil {
		hookLogs = wrap(logs)
	}
	repo := timeadjustment.NewRepository(gdb)
	activities := activity.NewService(activity.NewRepository(gdb), nil, clock)

	return &stack{
		gdb:     gdb,
		repo:    repo,
		logs:    logs,
		service: timeadjustment.NewService(sqlDB, repo, hookLogs, activities, kafka.NewOutboxRepository(gdb), clock, manila, workflow.Config{}),
	}
}

func TestSQLite_ApprovalUpsertsTimeLog(t *testing.T) {
	ctx := context.Background()
	s := openStack(t, nil)

	submitted, err := s.service.Submit(ctx, employee, &timeadjustment.TimeAdjustment{
		Date:             "2024-01-10",
		RequestedTimeIn:  "09:00",
		RequestedTimeOut: "18:00",
		Reason:           "badge reader offline",
	})
	require.NoError(t, err)

	_, err = s.service.Decide(ctx, admin, submitted.ID, "approved", "ok")
	require.NoError(t, err)

	row, err := s.logs.FindByID(ctx, attendance.LogID("u-1", "2024-01-10"))
	require.NoError(t, err)
	assert.True(t, at(t, "2024-01-10", "09:00").Equal(*row.TimeIn))
	assert.True(t, at(t, "2024-01-10", "18:00").Equal(*row.TimeOut))
	assert.Equal(t, attendance.SourceAdjustment, row.Source)

	var decided int64
	require.NoError(t, s.gdb.Model(&kafka.OutboxEvent{}).Where("event_type = ?", events.EventRequestDecided).Count(&decided).Error)
	assert.Equal(t, int64(1), decided)

	approved, err := s.repo.ListApproved(ctx, "u-1", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Len(t, approved, 1)
}

func TestSQLite_FailedTimeLogWriteKeepsRequestPending(t *testing.T) {
	ctx := context.Background()
	s := openStack(t, func(r attendance.Repository) attendance.Repository { return failingUpsert{r} })

	submitted, err := s.service.Submit(ctx, employee, &timeadjustment.TimeAdjustment{
		Date:            "2024-01-10",
		RequestedTimeIn: "09:00",
		Reason:          "badge reader offline",
	})
	require.NoError(t, err)

	_, err = s.service.Decide(ctx, admin, submitted.ID, "approved", "")
	require.Error(t, err)

	stored, err := s.repo.FindByID(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPending, stored.Status, "status write rolled back with the time log")
	assert.Nil(t, stored.ProcessedAt)

	_, err = s.logs.FindByID(ctx, attendance.LogID("u-1", "2024-01-10"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var activities int64
	require.NoError(t, s.gdb.Model(&activity.Activity{}).Count(&activities).Error)
	assert.Equal(t, int64(1), activities, "only the submission activity remains")

	var decided int64
	require.NoError(t, s.gdb.Model(&kafka.OutboxEvent{}).Where("event_type = ?", events.EventRequestDecided).Count(&decided).Error)
	assert.Zero(t, decided)
}
