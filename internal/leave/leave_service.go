package leave

import (
	"database/sql"

	"nova-hris/internal/activity"
	"nova-hris/internal/messaging/kafka"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/workflow"

	"go.uber.org/zap"
)

type Service = workflow.Service[Leave, *Leave]

func NewService(
	db *sql.DB,
	repo Repository,
	activities activity.Service,
	outbox kafka.OutboxRepository,
	clock timeutil.Clock,
	cfg workflow.Config,
	logger ...*zap.Logger,
) Service {
	return workflow.NewEngine(db, NewKind(), repo, activities, outbox, clock, cfg, logger...)
}
