package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/domain"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/service"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// StockAdjuster is the slice of the product service the consumer needs.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, id int64, delta int) (*domain.StockAdjustmentResponse, error)
}

// KafkaConsumer deducts stock for each order-created event through the
// same guarded adjustment path the HTTP API uses. Messages are
// committed only after the deduction is applied or rejected for a
// reason that a retry cannot fix.
type KafkaConsumer struct {
	reader *kafka.Reader
	stocks StockAdjuster
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func NewKafkaConsumer(brokers, groupID string, stocks StockAdjuster, logger *zap.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     strings.Split(brokers, ","),
		GroupID:     groupID,
		Topic:       OrderEventsTopic,
		StartOffset: kafka.FirstOffset,
	})

	return &KafkaConsumer{
		reader: reader,
		stocks: stocks,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (kc *KafkaConsumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	kc.cancel = cancel

	kc.logger.Info("Kafka consumer started", zap.String("topic", OrderEventsTopic))
	go kc.consume(ctx)
}

func (kc *KafkaConsumer) consume(ctx context.Context) {
	defer close(kc.done)

	for {
		msg, err := kc.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				kc.logger.Info("Kafka consumer stopped")
				return
			}
			kc.logger.Error("Error reading message", zap.Error(err))
			continue
		}

		if err := kc.processMessage(ctx, msg); err != nil {
			kc.logger.Error("Error processing message",
				zap.Error(err),
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset))
			continue
		}

		if err := kc.reader.CommitMessages(ctx, msg); err != nil {
			kc.logger.Error("Error committing message", zap.Error(err))
		}
	}
}

func (kc *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var event OrderCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	kc.logger.Info("Processing order created event",
		zap.Int64("order_id", event.OrderID),
		zap.Int64("product_id", event.ProductID),
		zap.Int("quantity", event.Quantity),
		zap.String("request_id", event.RequestID))

	result, err := kc.stocks.AdjustStock(ctx, event.ProductID, -event.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) || errors.Is(err, service.ErrInsufficientStock) {
			// Permanent rejection, retrying would not change the outcome.
			kc.logger.Warn("Stock deduction rejected",
				zap.Int64("order_id", event.OrderID),
				zap.Int64("product_id", event.ProductID),
				zap.Int("quantity", event.Quantity),
				zap.Error(err))
			return nil
		}
		return fmt.Errorf("stock deduction failed for product %d: %w", event.ProductID, err)
	}

	kc.logger.Info("Stock deducted successfully",
		zap.Int64("order_id", event.OrderID),
		zap.Int64("product_id", event.ProductID),
		zap.Int("previous_stock", result.PreviousStock),
		zap.Int("new_stock", result.NewStock))

	return nil
}

func (kc *KafkaConsumer) Stop() {
	kc.logger.Info("Stopping Kafka consumer")
	if kc.cancel != nil {
		kc.cancel()
		<-kc.done
	}
	if err := kc.reader.Close(); err != nil {
		kc.logger.Error("Error closing kafka reader", zap.Error(err))
	}
}
