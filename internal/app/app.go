package app

import (
	"database/sql"
	"fmt"
	"time"

	"nova-hris/internal/activity"
	"nova-hris/internal/attendance"
	"nova-hris/internal/config"
	"nova-hris/internal/database"
	"nova-hris/internal/leave"
	"nova-hris/internal/messaging/kafka"
	"nova-hris/internal/overtime"
	"nova-hris/internal/schedule"
	"nova-hris/internal/shared/connection"
	"nova-hris/internal/shared/counter"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/timeadjustment"
	"nova-hris/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the shared connections every process builds on.
type Infra struct {
	Config   *config.Config
	Logger   *zap.Logger
	GormDB   *gorm.DB
	DB       *sql.DB
	Redis    *redis.Client
	Location *time.Location
	Clock    timeutil.Clock
}

// Connect opens the database and, when requireRedis is false, treats redis as
// optional: a failed connection leaves Infra.Redis nil.
func Connect(cfg *config.Config, logger *zap.Logger, requireRedis bool) (*Infra, error) {
	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.Database.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("driver", cfg.Database.Driver))

	infra := &Infra{
		Config:   cfg,
		Logger:   logger,
		GormDB:   gormDB,
		DB:       sqlDB,
		Location: loc,
		Clock:    timeutil.SystemClock{},
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries)
	switch {
	case err == nil:
		infra.Redis = rdb
		logger.Info("redis connection established", zap.String("addr", cfg.Redis.Addr))
	case requireRedis:
		sqlDB.Close()
		return nil, err
	default:
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
	}

	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.Logger.Warn("close redis failed", zap.Error(err))
		}
	}
	if i.DB != nil {
		if err := i.DB.Close(); err != nil {
			i.Logger.Warn("close database failed", zap.Error(err))
		}
	}
}

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&attendance.TimeLog{},
		&schedule.Schedule{},
		&leave.Leave{},
		&overtime.Overtime{},
		&timeadjustment.TimeAdjustment{},
		&activity.Activity{},
		&kafka.OutboxEvent{},
		&counter.Counter{},
	}
}

// Migrate brings the schema up to date: SQL migrations on postgres,
// AutoMigrate on sqlite.
func Migrate(infra *Infra) error {
	if infra.Config.Database.Driver == "sqlite" {
		if err := infra.GormDB.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}
	return database.RunMigrations(infra.DB, infra.Logger)
}
