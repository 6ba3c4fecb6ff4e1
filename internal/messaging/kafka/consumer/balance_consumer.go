package consumer

import (
	"context"
	"encoding/json"

	"go-leavedesk/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DashboardChannel is the redis pub/sub channel the dashboard subscribes to.
const DashboardChannel = "dashboard:leave-balance"

// ConsumeBalanceChanged bridges balance-changed events from Kafka onto the
// dashboard's redis channel. Delivery to the dashboard is best-effort; a
// failed publish is logged and the offset committed anyway (at-most-once).
func ConsumeBalanceChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.balance_changed")
	log.Info("balance changed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("balance changed consumer stopped")
				return
			}
			log.Error("fetch balance changed message failed", zap.Error(err))
			continue
		}

		var event events.BalanceChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode balance_changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := rdb.Publish(ctx, DashboardChannel, msg.Value).Err(); err != nil {
			log.Error("publish to dashboard channel failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("category", event.Category),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit balance changed message failed", zap.Error(err))
			continue
		}

		log.Info("balance update forwarded to dashboard",
			zap.String("employee_id", event.EmployeeID),
			zap.String("category", event.Category),
			zap.Int("new_balance", event.NewBalance),
		)
	}
}
