package app

import (
	"context"
	"errors"

	"nova-hris/internal/bootstrap"
	"nova-hris/internal/events"
	"nova-hris/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer reads request and attendance events, refreshing the dashboard
// cache and the activity mirror.
func RunConsumer(infra *Infra) error {
	logger := infra.Logger.Named("app.consumer")
	cfg := infra.Config

	if !cfg.Kafka.Enabled {
		return errors.New("kafka.enabled must be true to run the consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := buildModules(ctx, infra)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupTopics:    []string{events.RequestLifecycleTopic, events.AttendanceTopic},
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	handler := consumer.NewHandler(m.Activity, m.Report, logger)
	go consumer.ConsumeLifecycle(ctx, reader, handler, logger)

	sig := bootstrap.WaitForSignal()
	logger.Info("consumer shutting down", zap.String("signal", sig))
	cancel()

	return nil
}
