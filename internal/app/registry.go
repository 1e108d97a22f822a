package app

import (
	"context"
	"net/http"

	"nova-hris/internal/activity"
	"nova-hris/internal/attendance"
	"nova-hris/internal/auth"
	"nova-hris/internal/bootstrap"
	"nova-hris/internal/leave"
	"nova-hris/internal/messaging/kafka"
	"nova-hris/internal/metrics"
	"nova-hris/internal/middleware"
	"nova-hris/internal/overtime"
	"nova-hris/internal/rbac"
	"nova-hris/internal/report"
	"nova-hris/internal/schedule"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/connection"
	"nova-hris/internal/shared/counter"
	"nova-hris/internal/shared/response"
	"nova-hris/internal/timeadjustment"
	"nova-hris/internal/user"
	"nova-hris/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Modules is the service graph shared by the API and the background
// processes.
type Modules struct {
	Users          user.Repository
	Profiles       session.ProfileLoader
	Activity       activity.Service
	Outbox         kafka.OutboxRepository
	TimeLogs       attendance.Repository
	Attendance     attendance.Service
	Leave          leave.Service
	Overtime       overtime.Service
	TimeAdjustment timeadjustment.Service
	Schedule       schedule.Service
	Report         report.Service
}

// mirrorStore connects the optional MongoDB activity mirror. Failures fall
// back to the relational feed.
func mirrorStore(ctx context.Context, infra *Infra) activity.MirrorStore {
	cfg := infra.Config.Activity
	if !cfg.MongoEnabled {
		return nil
	}
	client, err := connection.ConnectMongoWithRetry(cfg.MongoURI, infra.Config.Database.MaxRetries)
	if err != nil {
		infra.Logger.Warn("activity mirror disabled", zap.Error(err))
		return nil
	}
	store, err := activity.NewMongoStore(ctx, client, cfg.MongoDatabase)
	if err != nil {
		infra.Logger.Warn("activity mirror disabled", zap.Error(err))
		return nil
	}
	return store
}

func buildModules(ctx context.Context, infra *Infra) *Modules {
	gdb := infra.GormDB
	logger := infra.Logger

	m := &Modules{}
	m.Users = user.NewRepository(gdb)
	m.Profiles = user.NewProfileLoader(m.Users)
	m.Activity = activity.NewService(activity.NewRepository(gdb), mirrorStore(ctx, infra), infra.Clock, logger)
	m.Outbox = kafka.NewOutboxRepository(gdb)
	m.TimeLogs = attendance.NewRepository(gdb)
	m.Report = report.NewService(
		report.NewRepository(gdb), m.Users, m.TimeLogs, infra.Redis, infra.Config.Redis.DashboardTTL, logger,
	)

	// events are only queued when the relay in cmd/worker will drain them
	var outbox kafka.OutboxRepository
	if infra.Config.Kafka.Enabled {
		outbox = m.Outbox
	}
	wf := workflow.Config{
		AllowRedecide: infra.Config.Workflow.AllowRedecide,
		Dashboard:     m.Report,
	}

	scheduleRepo := schedule.NewRepository(gdb)
	adjustmentRepo := timeadjustment.NewRepository(gdb)

	m.Attendance = attendance.NewService(
		infra.DB,
		m.TimeLogs,
		m.Activity,
		outbox,
		attendance.Sources{
			Schedules:   schedule.NewSlotSource(scheduleRepo),
			Adjustments: timeadjustment.NewApprovedSource(adjustmentRepo),
		},
		infra.Clock,
		infra.Location,
		logger,
	)
	m.Leave = leave.NewService(infra.DB, leave.NewRepository(gdb), m.Activity, outbox, infra.Clock, wf, logger)
	m.Overtime = overtime.NewService(infra.DB, overtime.NewRepository(gdb), m.Activity, outbox, infra.Clock, wf, logger)
	m.TimeAdjustment = timeadjustment.NewService(
		infra.DB, adjustmentRepo, m.TimeLogs, m.Activity, outbox, infra.Clock, infra.Location, wf, logger,
	)
	m.Schedule = schedule.NewService(infra.DB, scheduleRepo, m.Profiles, infra.Clock, logger)
	return m
}

// BuildApp wires every module onto router.
func BuildApp(ctx context.Context, router *gin.Engine, infra *Infra, auditLogger bootstrap.AuditLogger) error {
	cfg := infra.Config
	logger := infra.Logger
	m := buildModules(ctx, infra)

	rbacService, err := rbac.NewDefaultService(logger)
	if err != nil {
		return err
	}

	authService := auth.NewService(
		m.Users,
		auth.NewRevocationStore(infra.Redis),
		auth.Config{Secret: cfg.JWT.Secret, AccessTTL: cfg.JWT.AccessTTL, RefreshTTL: cfg.JWT.RefreshTTL},
		infra.Clock,
		logger,
	)
	authService.OnAuthChange(func(e auth.Event) {
		auditLogger.Log(context.Background(), bootstrap.AuditLog{
			Action:  "AUTH_" + string(e.Type),
			Message: "authentication state changed",
			Meta:    map[string]any{"user_id": e.UserID, "email": e.Email, "at": e.At},
		})
	})

	resolver := session.NewResolver(m.Profiles, logger)
	authn := middleware.AuthMiddleware(authService, resolver)
	idempotency := middleware.Idempotency(infra.Redis)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.App.IsProduction(), logger)
	attendanceHandler := attendance.NewHandler(m.Attendance, logger)
	leaveHandler := leave.NewHandler(m.Leave, logger)
	overtimeHandler := overtime.NewHandler(m.Overtime, logger)
	adjustmentHandler := timeadjustment.NewHandler(m.TimeAdjustment, logger)
	scheduleHandler := schedule.NewHandler(m.Schedule, infra.Clock, logger)
	reportHandler := report.NewHandler(m.Report, infra.Location, logger)
	userHandler := user.NewHandler(user.NewServiceWithCounter(m.Users, counter.NewRepository(infra.GormDB), logger), logger)
	activityHandler := activity.NewHandler(m.Activity)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	metrics.Init()
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Locale(),
		metrics.Middleware(),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.IPPerSecond), cfg.RateLimit.IPBurst),
	)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := infra.DB.PingContext(c.Request.Context()); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			unavailable := apperror.ErrServiceUnavailable
			response.Error(c, unavailable.HTTPStatus, unavailable.Code, unavailable.Message, nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, authn)

	protected := api.Group("")
	protected.Use(authn, middleware.ContextLogger(logger), middleware.RateLimitByUser(rate.Limit(cfg.RateLimit.UserPerSecond), cfg.RateLimit.UserBurst))
	{
		attendance.RegisterRoutes(protected, attendanceHandler, rbacService)
		leave.RegisterRoutes(protected, leaveHandler, rbacService, idempotency)
		overtime.RegisterRoutes(protected, overtimeHandler, rbacService, idempotency)
		timeadjustment.RegisterRoutes(protected, adjustmentHandler, rbacService, idempotency)
		schedule.RegisterRoutes(protected, scheduleHandler, rbacService)
		report.RegisterRoutes(protected, reportHandler, rbacService)
		user.RegisterRoutes(protected, userHandler, rbacService)
		activity.RegisterRoutes(protected, activityHandler, rbacService)
		rbac.RegisterRoutes(protected, rbacHandler)
	}

	return nil
}
