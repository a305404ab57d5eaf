package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/drivetrade/vehicle-store-api/internal/model"
)

const (
	orderPlacedQueue = "orders.placed"
	dlxExchange      = "orders.placed.dlx"
	dlqQueueName     = "orders.placed.dlq"
	idempotencyTTL   = 24 * time.Hour
)

// OrderWorker consumes post-commit order events. It only performs follow-up
// side effects (dropping stale vehicle cache entries, recording the
// confirmation); order placement itself is already committed by the service.
type OrderWorker struct {
	channel     *amqp.Channel
	redisClient *redis.Client
	log         *slog.Logger
	done        chan struct{}
}

func NewOrderWorker(ch *amqp.Channel, redisClient *redis.Client, log *slog.Logger) *OrderWorker {
	return &OrderWorker{
		channel:     ch,
		redisClient: redisClient,
		log:         log,
		done:        make(chan struct{}),
	}
}

// SetupRabbitMQ declares exchanges, queues, and bindings (DLX/DLQ).
func SetupRabbitMQ(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(dlxExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLX: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}
	if err := ch.QueueBind(dlqQueueName, orderPlacedQueue, dlxExchange, false, nil); err != nil {
		return fmt.Errorf("bind DLQ: %w", err)
	}
	if _, err := ch.QueueDeclare(orderPlacedQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxExchange,
		"x-dead-letter-routing-key": orderPlacedQueue,
	}); err != nil {
		return fmt.Errorf("declare order queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set QoS: %w", err)
	}
	return nil
}

func (w *OrderWorker) Start(ctx context.Context) error {
	msgs, err := w.channel.Consume(orderPlacedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				w.processMessage(ctx, msg)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	w.log.Info("order worker started")
	return nil
}

func (w *OrderWorker) Stop() { close(w.done) }

func (w *OrderWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var placed model.OrderPlacedMessage
	if err := json.Unmarshal(msg.Body, &placed); err != nil {
		w.log.Error("unmarshal order message", "error", err)
		_ = msg.Nack(false, false)
		return
	}

	log := w.log.With("order_id", placed.OrderID, "user_id", placed.UserID)

	idempotencyKey := "order_confirmed:" + placed.OrderID.String()
	exists, err := w.redisClient.Exists(ctx, idempotencyKey).Result()
	if err != nil {
		log.Error("check idempotency key", "error", err)
		_ = msg.Nack(false, true)
		return
	}
	if exists > 0 {
		log.Info("order already confirmed, skipping")
		_ = msg.Ack(false)
		return
	}

	// Ordered vehicles changed stock; their cached reads are stale now.
	for _, vehicleID := range placed.VehicleIDs {
		if err := w.redisClient.Del(ctx, "vehicle:"+vehicleID.String()).Err(); err != nil {
			log.Error("invalidate vehicle cache", "vehicle_id", vehicleID, "error", err)
			_ = msg.Nack(false, true)
			return
		}
	}

	if err := w.redisClient.Set(ctx, idempotencyKey, "1", idempotencyTTL).Err(); err != nil {
		log.Error("set idempotency key", "error", err)
	}

	_ = msg.Ack(false)
	log.Info("order confirmation recorded")
}
