package workflow

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"nova-hris/internal/activity"
	"nova-hris/internal/events"
	"nova-hris/internal/i18n"
	"nova-hris/internal/messaging/kafka"
	"nova-hris/internal/metrics"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/contextutil"
	"nova-hris/internal/shared/ids"
	"nova-hris/internal/shared/sanitize"
	"nova-hris/internal/shared/timeutil"
	workflowerrors "nova-hris/internal/workflow/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the request lifecycle every kind exposes.
type Service[E any, P Record[E]] interface {
	Submit(ctx context.Context, actor session.Actor, req P) (P, error)
	Decide(ctx context.Context, admin session.Actor, id, decision, note string) (P, error)
	Get(ctx context.Context, actor session.Actor, id string) (P, error)
	ListMine(ctx context.Context, actor session.Actor) ([]E, error)
	ListAll(ctx context.Context, admin session.Actor, status string) ([]E, error)
}

// DashboardInvalidator drops cached admin counters.
type DashboardInvalidator interface {
	InvalidateDashboard(ctx context.Context) error
}

type Config struct {
	// AllowRedecide lets a decided request be decided again, overwriting the
	// previous outcome.
	AllowRedecide bool

	// Dashboard is invalidated after every committed submit or decision.
	Dashboard DashboardInvalidator
}

type Engine[E any, P Record[E]] struct {
	db         *sql.DB
	kind       Kind[E, P]
	repo       Repository[E]
	activities activity.Service
	outbox     kafka.OutboxRepository
	clock      timeutil.Clock
	cfg        Config
	logger     *zap.Logger
}

func NewEngine[E any, P Record[E]](
	db *sql.DB,
	kind Kind[E, P],
	repo Repository[E],
	activities activity.Service,
	outbox kafka.OutboxRepository,
	clock timeutil.Clock,
	cfg Config,
	logger ...*zap.Logger,
) *Engine[E, P] {
	name := kind.Name + ".service"
	l := zap.L().Named(name)
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named(name)
	}
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &Engine[E, P]{
		db:         db,
		kind:       kind,
		repo:       repo,
		activities: activities,
		outbox:     outbox,
		clock:      clock,
		cfg:        cfg,
		logger:     l,
	}
}

func (s *Engine[E, P]) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *Engine[E, P]) Submit(ctx context.Context, actor session.Actor, req P) (P, error) {
	log := s.log(ctx)
	if actor.UID == "" {
		return nil, apperror.ErrUnauthorized
	}

	if s.kind.Prepare != nil {
		if err := s.kind.Prepare(ctx, actor, req); err != nil {
			log.Warn("submit "+s.kind.Name+" prepare failed", zap.String("user_id", actor.UID), zap.Error(err))
			return nil, err
		}
	}
	if s.kind.Validate != nil {
		if err := s.kind.Validate(req); err != nil {
			log.Warn("submit "+s.kind.Name+" validation failed", zap.String("user_id", actor.UID), zap.Error(err))
			return nil, err
		}
	}

	now := s.clock.Now()
	env := req.Env()
	env.ID = ids.NewAt(now)
	env.UserID = actor.UID
	env.UserName = actor.Name
	env.EmployeeID = actor.EmployeeID
	env.Status = StatusPending
	env.AdminNote = ""
	env.DecidedBy = nil
	env.ProcessedAt = nil
	env.CreatedAt = now
	env.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit "+s.kind.Name+" begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, (*E)(req)); err != nil {
		log.Error("submit "+s.kind.Name+" persist failed", zap.Error(err))
		return nil, err
	}

	summary := s.kind.Submitted(req)
	act, err := s.activities.Record(ctx, tx, activity.Entry{
		UserID:      env.UserID,
		Type:        summary.ActivityType,
		MessageID:   summary.MessageID,
		Data:        summary.Data,
		RequestKind: s.kind.Name,
		RequestID:   env.ID,
		Snapshot:    req,
		At:          now,
	})
	if err != nil {
		log.Error("submit "+s.kind.Name+" record activity failed", zap.Error(err))
		return nil, err
	}

	if err := s.writeOutbox(ctx, tx, events.EventRequestSubmitted, env.ID, events.RequestSubmittedEvent{
		EventType:  events.EventRequestSubmitted,
		Kind:       s.kind.Name,
		RequestID:  env.ID,
		UserID:     env.UserID,
		UserName:   env.UserName,
		EmployeeID: env.EmployeeID,
		Activity:   activity.Snapshot(act),
		OccurredAt: now,
	}); err != nil {
		log.Error("submit "+s.kind.Name+" write outbox failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit "+s.kind.Name+" commit failed", zap.Error(err))
		return nil, err
	}

	s.invalidateDashboard(ctx)
	metrics.RequestsSubmitted.WithLabelValues(s.kind.Name).Inc()
	log.Info("submit "+s.kind.Name+" success",
		zap.String("request_id", env.ID),
		zap.String("user_id", env.UserID),
	)
	return req, nil
}

func (s *Engine[E, P]) Decide(ctx context.Context, admin session.Actor, id, decision, note string) (P, error) {
	log := s.log(ctx)
	if !admin.IsAdmin() {
		return nil, workflowerrors.ErrForbidden
	}

	decision = strings.ToLower(strings.TrimSpace(decision))
	if decision != StatusApproved && decision != StatusRejected {
		return nil, workflowerrors.ErrInvalidDecision
	}
	note = sanitize.Text(note)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide "+s.kind.Name+" begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	found, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflowerrors.ErrRequestNotFound
		}
		log.Error("decide "+s.kind.Name+" load failed", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}
	req := P(found)
	env := req.Env()

	prevStatus := env.Status
	if env.IsTerminal() && !s.cfg.AllowRedecide {
		log.Warn("decide "+s.kind.Name+" rejected, already decided",
			zap.String("request_id", id),
			zap.String("status", prevStatus),
		)
		return nil, workflowerrors.ErrInvalidStatusTransition
	}

	now := s.clock.Now()
	decidedBy := admin.UID
	env.Status = decision
	env.AdminNote = note
	env.ProcessedAt = &now
	env.DecidedBy = &decidedBy
	env.UpdatedAt = now

	if err := qtx.Update(ctx, found); err != nil {
		log.Error("decide "+s.kind.Name+" persist failed", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}

	if decision == StatusApproved && s.kind.OnApprove != nil {
		if err := s.kind.OnApprove(ctx, tx, req); err != nil {
			log.Error("decide "+s.kind.Name+" approval side effect failed", zap.String("request_id", id), zap.Error(err))
			return nil, err
		}
	}

	summary := s.kind.Decided(req)
	data := map[string]any{}
	for k, v := range summary.Data {
		data[k] = v
	}
	data["Status"] = i18n.T(ctx, "status."+decision)

	act, err := s.activities.Record(ctx, tx, activity.Entry{
		UserID:      env.UserID,
		Type:        summary.ActivityType,
		MessageID:   summary.MessageID,
		Data:        data,
		RequestKind: s.kind.Name,
		RequestID:   env.ID,
		Snapshot:    req,
		At:          now,
	})
	if err != nil {
		log.Error("decide "+s.kind.Name+" record activity failed", zap.Error(err))
		return nil, err
	}

	if err := s.writeOutbox(ctx, tx, events.EventRequestDecided, env.ID, events.RequestDecidedEvent{
		EventType:  events.EventRequestDecided,
		Kind:       s.kind.Name,
		RequestID:  env.ID,
		UserID:     env.UserID,
		Status:     decision,
		PrevStatus: prevStatus,
		DecidedBy:  decidedBy,
		AdminNote:  note,
		Activity:   activity.Snapshot(act),
		OccurredAt: now,
	}); err != nil {
		log.Error("decide "+s.kind.Name+" write outbox failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("decide "+s.kind.Name+" commit failed", zap.Error(err))
		return nil, err
	}

	s.invalidateDashboard(ctx)
	metrics.RequestsDecided.WithLabelValues(s.kind.Name, decision).Inc()
	log.Info("decide "+s.kind.Name+" success",
		zap.String("request_id", env.ID),
		zap.String("decision", decision),
		zap.String("prev_status", prevStatus),
		zap.String("decided_by", decidedBy),
	)
	return req, nil
}

func (s *Engine[E, P]) Get(ctx context.Context, actor session.Actor, id string) (P, error) {
	if actor.UID == "" {
		return nil, apperror.ErrUnauthorized
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflowerrors.ErrRequestNotFound
		}
		s.log(ctx).Error("get "+s.kind.Name+" failed", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}

	req := P(found)
	if req.Env().UserID != actor.UID && !actor.IsAdmin() {
		return nil, workflowerrors.ErrNotOwner
	}
	return req, nil
}

func (s *Engine[E, P]) ListMine(ctx context.Context, actor session.Actor) ([]E, error) {
	if actor.UID == "" {
		return nil, apperror.ErrUnauthorized
	}
	items, err := s.repo.ListByUser(ctx, actor.UID)
	if err != nil {
		s.log(ctx).Error("list own "+s.kind.Name+" failed", zap.String("user_id", actor.UID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (s *Engine[E, P]) ListAll(ctx context.Context, admin session.Actor, status string) ([]E, error) {
	if !admin.IsAdmin() {
		return nil, workflowerrors.ErrForbidden
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && !ValidStatus(status) {
		return nil, workflowerrors.ErrInvalidStatusFilter
	}

	items, err := s.repo.List(ctx, status)
	if err != nil {
		s.log(ctx).Error("list "+s.kind.Name+" failed", zap.String("status", status), zap.Error(err))
		return nil, err
	}
	return items, nil
}

// invalidateDashboard runs after commit. A failure only leaves the cache
// stale until its TTL, so it is logged and swallowed.
func (s *Engine[E, P]) invalidateDashboard(ctx context.Context) {
	if s.cfg.Dashboard == nil {
		return
	}
	if err := s.cfg.Dashboard.InvalidateDashboard(ctx); err != nil {
		s.log(ctx).Warn(s.kind.Name+" dashboard invalidation failed", zap.Error(err))
	}
}

// writeOutbox is a no-op when no relay drains the outbox.
func (s *Engine[E, P]) writeOutbox(ctx context.Context, tx *sql.Tx, eventType, aggregateID string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: s.kind.Name,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         events.RequestLifecycleTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	})
}
