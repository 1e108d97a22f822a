package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"nova-hris/internal/events"
	"nova-hris/internal/i18n"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/contextutil"
	"nova-hris/internal/shared/ids"
	"nova-hris/internal/shared/timeutil"

	"go.uber.org/zap"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

//go:generate mockgen -source=activity_service.go -destination=mock/activity_service_mock.go -package=mock
type Service interface {
	// Record appends inside tx when it is non-nil.
	Record(ctx context.Context, tx *sql.Tx, e Entry) (Activity, error)
	Feed(ctx context.Context, actor session.Actor, limit int) ([]ActivityResponse, error)
	Mirror(ctx context.Context, snap events.ActivitySnapshot) error
}

type service struct {
	repo   Repository
	mirror MirrorStore
	clock  timeutil.Clock
	logger *zap.Logger
}

// NewService takes an optional mirror; pass nil to run without one.
func NewService(repo Repository, mirror MirrorStore, clock timeutil.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("activity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.service")
	}
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &service{repo: repo, mirror: mirror, clock: clock, logger: l}
}

func (s *service) Record(ctx context.Context, tx *sql.Tx, e Entry) (Activity, error) {
	if e.UserID == "" || e.Type == "" {
		return Activity{}, fmt.Errorf("activity: user id and type are required")
	}

	at := e.At
	if at.IsZero() {
		at = s.clock.Now()
	}

	description := e.MessageID
	if e.MessageID != "" {
		description = i18n.T(ctx, e.MessageID, e.Data)
	}

	a := Activity{
		ID:          ids.NewAt(at),
		UserID:      e.UserID,
		Type:        e.Type,
		Description: description,
		RequestKind: e.RequestKind,
		RequestID:   e.RequestID,
		Timestamp:   at,
	}
	if e.Snapshot != nil {
		raw, err := json.Marshal(e.Snapshot)
		if err != nil {
			return Activity{}, fmt.Errorf("activity: marshal snapshot: %w", err)
		}
		a.Snapshot = raw
	}

	repo := s.repo
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	if err := repo.Append(ctx, &a); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("append activity failed",
			zap.String("user_id", a.UserID),
			zap.String("type", a.Type),
			zap.Error(err),
		)
		return Activity{}, err
	}
	return a, nil
}

func (s *service) Feed(ctx context.Context, actor session.Actor, limit int) ([]ActivityResponse, error) {
	if actor.UID == "" {
		return nil, apperror.ErrUnauthorized
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	// the relational store is authoritative and sees the caller's own writes;
	// the mirror only serves reads while it is down
	items, err := s.repo.ListByUser(ctx, actor.UID, limit)
	if err == nil {
		return toListResponse(items), nil
	}
	if s.mirror == nil {
		s.logger.Error("list activities failed", zap.String("user_id", actor.UID), zap.Error(err))
		return nil, err
	}

	s.logger.Warn("list activities failed, reading mirror", zap.String("user_id", actor.UID), zap.Error(err))
	mirrored, mirrorErr := s.mirror.ListByUser(ctx, actor.UID, limit)
	if mirrorErr != nil {
		s.logger.Error("activity mirror read failed", zap.String("user_id", actor.UID), zap.Error(mirrorErr))
		return nil, err
	}
	return toListResponse(mirrored), nil
}

// Mirror copies an event's activity into the read-side store. It is a no-op
// without a mirror.
func (s *service) Mirror(ctx context.Context, snap events.ActivitySnapshot) error {
	if s.mirror == nil || snap.ID == "" {
		return nil
	}
	return s.mirror.Upsert(ctx, Activity{
		ID:          snap.ID,
		UserID:      snap.UserID,
		Type:        snap.Type,
		Description: snap.Description,
		RequestKind: snap.RequestKind,
		RequestID:   snap.RequestID,
		Timestamp:   snap.Timestamp,
	})
}

// Snapshot converts a stored activity into its event form.
func Snapshot(a Activity) events.ActivitySnapshot {
	return events.ActivitySnapshot{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        a.Type,
		Description: a.Description,
		RequestKind: a.RequestKind,
		RequestID:   a.RequestID,
		Timestamp:   a.Timestamp,
	}
}
