package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"nova-hris/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader used here.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type ActivityMirror interface {
	Mirror(ctx context.Context, snap events.ActivitySnapshot) error
}

type DashboardInvalidator interface {
	InvalidateDashboard(ctx context.Context) error
}

type Handler struct {
	activities ActivityMirror
	dashboard  DashboardInvalidator
	logger     *zap.Logger
}

func NewHandler(activities ActivityMirror, dashboard DashboardInvalidator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.L()
	}
	return &Handler{activities: activities, dashboard: dashboard, logger: logger.Named("kafka.consumer.lifecycle")}
}

// Handle applies one message. Undecodable messages are dropped (nil error) so
// they do not block the partition.
func (h *Handler) Handle(ctx context.Context, msg kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		h.logger.Error("decode event envelope failed", zap.String("topic", msg.Topic), zap.Error(err))
		return nil
	}

	switch env.EventType {
	case events.EventRequestSubmitted:
		var event events.RequestSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.Error("decode request.submitted failed", zap.Error(err))
			return nil
		}
		if err := h.invalidate(ctx); err != nil {
			return err
		}
		return h.mirror(ctx, event.Activity)

	case events.EventRequestDecided:
		var event events.RequestDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.Error("decode request.decided failed", zap.Error(err))
			return nil
		}
		if err := h.invalidate(ctx); err != nil {
			return err
		}
		h.logger.Info("request decided",
			zap.String("kind", event.Kind),
			zap.String("request_id", event.RequestID),
			zap.String("status", event.Status),
			zap.String("decided_by", event.DecidedBy),
		)
		return h.mirror(ctx, event.Activity)

	case events.EventClockedIn, events.EventClockedOut:
		var event events.AttendanceClockedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.Error("decode attendance event failed", zap.Error(err))
			return nil
		}
		return h.mirror(ctx, event.Activity)

	default:
		h.logger.Warn("unknown event type, skipping", zap.String("event_type", env.EventType))
		return nil
	}
}

func (h *Handler) invalidate(ctx context.Context) error {
	if h.dashboard == nil {
		return nil
	}
	if err := h.dashboard.InvalidateDashboard(ctx); err != nil {
		return fmt.Errorf("invalidate dashboard: %w", err)
	}
	return nil
}

func (h *Handler) mirror(ctx context.Context, snap events.ActivitySnapshot) error {
	if h.activities == nil {
		return nil
	}
	if err := h.activities.Mirror(ctx, snap); err != nil {
		return fmt.Errorf("mirror activity: %w", err)
	}
	return nil
}

func ConsumeLifecycle(ctx context.Context, reader MessageReader, handler *Handler, logger *zap.Logger) {
	log := logger.Named("kafka.consumer.lifecycle")
	log.Info("lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		if err := handler.Handle(ctx, msg); err != nil {
			// left uncommitted, redelivered after restart or rebalance
			log.Error("handle lifecycle message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
			continue
		}
	}
}
