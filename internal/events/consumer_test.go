package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/domain"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/repository"
	"github.com/cloud-wave-best-zizon/ecommerce-backend/internal/product/service"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newConsumerFixture(t *testing.T, stock int) (*KafkaConsumer, *service.ProductService, int64) {
	t.Helper()

	svc := service.NewProductService(repository.NewMemoryProductRepository(), zap.NewNop())
	p, err := svc.CreateProduct(context.Background(), domain.CreateProductRequest{
		Name:  "Widget",
		Price: 9.99,
		Stock: stock,
	})
	require.NoError(t, err)

	kc := &KafkaConsumer{
		stocks: svc,
		logger: zap.NewNop(),
	}
	return kc, svc, p.ID
}

func orderMessage(t *testing.T, productID int64, quantity int) kafka.Message {
	t.Helper()
	event := OrderCreatedEvent{
		EventID:   "evt-1",
		OrderID:   1,
		ProductID: productID,
		Quantity:  quantity,
		Status:    "PENDING",
		Timestamp: time.Now(),
	}
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Topic: OrderEventsTopic, Value: value}
}

func TestProcessMessageDeductsStock(t *testing.T) {
	kc, svc, productID := newConsumerFixture(t, 10)

	err := kc.processMessage(context.Background(), orderMessage(t, productID, 3))
	require.NoError(t, err)

	p, err := svc.GetProductByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
}

func TestProcessMessageInsufficientStockIsNotRetried(t *testing.T) {
	kc, svc, productID := newConsumerFixture(t, 2)

	// Rejection is final: the message is treated as handled.
	err := kc.processMessage(context.Background(), orderMessage(t, productID, 5))
	require.NoError(t, err)

	p, err := svc.GetProductByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
}

func TestProcessMessageUnknownProductIsNotRetried(t *testing.T) {
	kc, _, _ := newConsumerFixture(t, 2)

	err := kc.processMessage(context.Background(), orderMessage(t, 999, 1))
	assert.NoError(t, err)
}

func TestProcessMessageMalformedPayload(t *testing.T) {
	kc, _, _ := newConsumerFixture(t, 2)

	err := kc.processMessage(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
