package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"nova-hris/internal/bootstrap"
	"nova-hris/internal/config"
	"nova-hris/internal/leave"
	"nova-hris/internal/messaging/kafka"
	"nova-hris/internal/overtime"
	"nova-hris/internal/report"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/timeadjustment"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	manila   = time.FixedZone("Asia/Manila", 8*3600)
	employee = session.Actor{UID: "u-1", Name: "Juan Dela Cruz", EmployeeID: "EMP001", Role: session.RoleEmployee}
	admin    = session.Actor{UID: "a-1", Name: "Admin", Role: session.RoleAdmin}
)

func testInfra(t *testing.T) *Infra {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "app.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	cfg := &config.Config{
		App:      config.AppConfig{Name: "nova-hris", Env: "test", Timezone: "Asia/Manila"},
		Database: config.DatabaseConfig{Driver: "sqlite"},
		Redis:    config.RedisConfig{DashboardTTL: time.Minute},
		JWT:      config.JWTConfig{Secret: "test-secret", AccessTTL: 15 * time.Minute, RefreshTTL: time.Hour},
		RateLimit: config.RateLimitConfig{
			IPPerSecond: 100, IPBurst: 100, UserPerSecond: 100, UserBurst: 100,
		},
	}

	infra := &Infra{
		Config:   cfg,
		Logger:   zap.NewNop(),
		GormDB:   gdb,
		DB:       sqlDB,
		Location: manila,
		Clock:    timeutil.FixedClock{T: time.Date(2024, 3, 4, 8, 30, 0, 0, manila)},
	}
	require.NoError(t, Migrate(infra))
	return infra
}

func TestMigrate_SQLiteCreatesEveryTable(t *testing.T) {
	infra := testInfra(t)

	for _, model := range Models() {
		assert.True(t, infra.GormDB.Migrator().HasTable(model), "%T", model)
	}
}

func TestModules_ClockInAndOvertimeFlow(t *testing.T) {
	ctx := context.Background()
	infra := testInfra(t)
	m := buildModules(ctx, infra)

	log, err := m.Attendance.ClockIn(ctx, employee)
	require.NoError(t, err)
	assert.Equal(t, "u-1_2024-03-04", log.ID)

	submitted, err := m.Overtime.Submit(ctx, employee, &overtime.Overtime{
		Date:   "2024-03-04",
		Hours:  2.5,
		Reason: "quarter close",
	})
	require.NoError(t, err)

	_, err = m.Overtime.Decide(ctx, admin, submitted.ID, "approved", "ok")
	require.NoError(t, err)

	counts, err := m.Report.DashboardCounts(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Approved)
	assert.InDelta(t, 2.5, counts.ApprovedOvertimeHours, 0.001)

	feed, err := m.Activity.Feed(ctx, employee, 10)
	require.NoError(t, err)
	assert.Len(t, feed, 3)

	for _, hook := range RolloverHooks(m, infra.Logger) {
		assert.NoError(t, hook(ctx, "2024-03-05"))
	}
}

func TestModules_DashboardFreshAfterSubmit(t *testing.T) {
	ctx := context.Background()
	infra := testInfra(t)
	rdb, mock := redismock.NewClientMock()
	infra.Redis = rdb
	m := buildModules(ctx, infra)

	payload := func(c report.DashboardCounts) string {
		data, err := json.Marshal(c)
		require.NoError(t, err)
		return string(data)
	}
	empty := report.DashboardCounts{ByKind: map[string]report.KindCounts{
		leave.Kind: {}, overtime.Kind: {}, timeadjustment.Kind: {},
	}}
	onePending := report.DashboardCounts{Pending: 1, Total: 1, ByKind: map[string]report.KindCounts{
		leave.Kind: {Pending: 1, Total: 1}, overtime.Kind: {}, timeadjustment.Kind: {},
	}}

	mock.ExpectGet(report.DashboardCacheKey).RedisNil()
	mock.ExpectSet(report.DashboardCacheKey, []byte(payload(empty)), time.Minute).SetVal("OK")
	mock.ExpectDel(report.DashboardCacheKey).SetVal(1)
	mock.ExpectGet(report.DashboardCacheKey).RedisNil()
	mock.ExpectSet(report.DashboardCacheKey, []byte(payload(onePending)), time.Minute).SetVal("OK")

	before, err := m.Report.DashboardCounts(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), before.Total)

	_, err = m.Leave.Submit(ctx, employee, &leave.Leave{
		LeaveType: "Sick Leave (SL)",
		FromDate:  "2024-03-11",
		ToDate:    "2024-03-12",
		Reason:    "flu",
	})
	require.NoError(t, err)

	after, err := m.Report.DashboardCounts(ctx, admin)
	require.NoError(t, err)

	var stored int64
	require.NoError(t, infra.GormDB.Model(&leave.Leave{}).Count(&stored).Error)
	assert.Equal(t, stored, after.Total)
	assert.Equal(t, int64(1), after.Pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModules_OutboxFollowsKafkaSwitch(t *testing.T) {
	ctx := context.Background()

	for _, enabled := range []bool{false, true} {
		infra := testInfra(t)
		infra.Config.Kafka.Enabled = enabled
		m := buildModules(ctx, infra)

		_, err := m.Attendance.ClockIn(ctx, employee)
		require.NoError(t, err)
		_, err = m.Overtime.Submit(ctx, employee, &overtime.Overtime{Date: "2024-03-04", Hours: 1, Reason: "deploy"})
		require.NoError(t, err)

		var queued int64
		require.NoError(t, infra.GormDB.Model(&kafka.OutboxEvent{}).Count(&queued).Error)
		if enabled {
			assert.Equal(t, int64(2), queued)
		} else {
			assert.Zero(t, queued, "no relay drains the outbox when kafka is off")
		}
	}
}

func TestBuildApp_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	infra := testInfra(t)
	rdb, _ := redismock.NewClientMock()
	infra.Redis = rdb

	router := gin.New()
	require.NoError(t, BuildApp(context.Background(), router, infra, bootstrap.NewStdoutAuditLogger(infra.Logger)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/attendance/today", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
