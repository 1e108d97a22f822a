package app

import (
	"context"

	"nova-hris/internal/attendance"
	"nova-hris/internal/bootstrap"
	"nova-hris/internal/messaging/kafka/producer"
	"nova-hris/internal/shared/connection"

	"go.uber.org/zap"
)

// RolloverHooks are the jobs run at each local midnight.
func RolloverHooks(m *Modules, logger *zap.Logger) []attendance.RolloverHook {
	return []attendance.RolloverHook{
		func(ctx context.Context, day string) error {
			// yesterday's clock-outs and decisions change the headline counts
			return m.Report.InvalidateDashboard(ctx)
		},
		func(ctx context.Context, day string) error {
			logger.Info("attendance day opened", zap.String("day", day))
			return nil
		},
	}
}

// RunWorker runs the midnight rollover and, when kafka is enabled, the
// outbox relay until a shutdown signal arrives.
func RunWorker(infra *Infra) error {
	logger := infra.Logger.Named("app.worker")
	cfg := infra.Config

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := buildModules(ctx, infra)

	ticker := attendance.NewMidnightTicker(infra.Clock, infra.Location, RolloverHooks(m, logger), logger)
	go ticker.Run(ctx)

	if cfg.Kafka.Enabled {
		kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, cfg.Database.MaxRetries)
		if err != nil {
			return err
		}
		defer kafkaWriter.Close()

		go producer.ProcessOutboxEvents(
			ctx,
			m.Outbox,
			kafkaWriter,
			logger,
			cfg.Kafka.PollInterval,
		)
	} else {
		logger.Info("kafka disabled, outbox relay not started")
	}

	sig := bootstrap.WaitForSignal()
	logger.Info("worker shutting down", zap.String("signal", sig))
	cancel()

	return nil
}
