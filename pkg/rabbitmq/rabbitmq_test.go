package rabbitmq_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"inventory/internal/models"
	"inventory/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChannel is a mock implementation of rabbitmq.Channel
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	a := m.Called(name, durable)
	return amqp.Queue{Name: name}, a.Error(0)
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	a := m.Called(exchange, key, msg)
	return a.Error(0)
}

func (m *MockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	a := m.Called(queue, autoAck)
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(<-chan amqp.Delivery), a.Error(1)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

// recordingAcknowledger captures how a delivery was settled.
type recordingAcknowledger struct {
	mu      sync.Mutex
	acked   int
	nacked  int
	requeue bool
	done    chan struct{}
}

func newAcknowledger() *recordingAcknowledger {
	return &recordingAcknowledger{done: make(chan struct{}, 16)}
}

func (r *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	r.mu.Lock()
	r.acked++
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *recordingAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	r.mu.Lock()
	r.nacked++
	r.requeue = requeue
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *recordingAcknowledger) Reject(tag uint64, requeue bool) error { return nil }

func newDelivery(t *testing.T, acker amqp.Acknowledger, v any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: acker, DeliveryTag: 1, Body: body}
}

func newClient(t *testing.T) (*rabbitmq.Client, *MockChannel) {
	t.Helper()
	ch := new(MockChannel)
	ch.On("QueueDeclare", rabbitmq.ProductEventsQueue, true).Return(nil).Once()
	ch.On("QueueDeclare", rabbitmq.StockAdjustmentsQueue, true).Return(nil).Once()
	client, err := rabbitmq.NewClientWithChannel(ch)
	require.NoError(t, err)
	return client, ch
}

func TestNewClientWithChannel_DeclareFailureClosesChannel(t *testing.T) {
	ch := new(MockChannel)
	ch.On("QueueDeclare", rabbitmq.ProductEventsQueue, true).Return(errors.New("access refused")).Once()
	ch.On("Close").Return(nil).Once()

	client, err := rabbitmq.NewClientWithChannel(ch)
	assert.Nil(t, client)
	assert.ErrorContains(t, err, "failed to declare product_events")
	ch.AssertExpectations(t)
}

func TestClose(t *testing.T) {
	client, ch := newClient(t)
	ch.On("Close").Return(nil).Once()
	assert.NoError(t, client.Close())
	ch.AssertExpectations(t)
}

func TestClose_WrapsChannelError(t *testing.T) {
	client, ch := newClient(t)
	ch.On("Close").Return(amqp.ErrClosed).Once()

	err := client.Close()
	assert.ErrorIs(t, err, amqp.ErrClosed)
	assert.ErrorContains(t, err, "failed to close channel")
	ch.AssertExpectations(t)
}

func TestPublishProductEvent(t *testing.T) {
	client, ch := newClient(t)

	event := models.ProductEvent{
		ID:         "3f1c2e1a-0000-4000-8000-000000000001",
		Type:       models.EventProductUpdated,
		ProductID:  9,
		Product:    &models.Product{ID: 9, Name: `Monitor 24"`, Quantity: 11},
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	ch.On("Publish", "", rabbitmq.ProductEventsQueue, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var decoded models.ProductEvent
		if err := json.Unmarshal(msg.Body, &decoded); err != nil {
			return false
		}
		return msg.ContentType == "application/json" &&
			msg.DeliveryMode == amqp.Persistent &&
			msg.MessageId == event.ID &&
			msg.Type == models.EventProductUpdated &&
			decoded.ProductID == 9 && decoded.Product.Quantity == 11
	})).Return(nil).Once()

	require.NoError(t, client.PublishProductEvent(event))
	ch.AssertExpectations(t)
}

func TestPublishProductEvent_Error(t *testing.T) {
	client, ch := newClient(t)
	ch.On("Publish", "", rabbitmq.ProductEventsQueue, mock.Anything).Return(amqp.ErrClosed).Once()

	err := client.PublishProductEvent(models.ProductEvent{Type: models.EventProductDeleted, ProductID: 1})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestHandleDelivery(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		handlerErr error
		wantAck    bool
	}{
		{"success acks", models.StockAdjustment{ProductID: 2, Quantity: 10}, nil, true},
		{"permanent failure acks", models.StockAdjustment{ProductID: 2, Quantity: -1}, &rabbitmq.PermanentError{Err: errors.New("invalid")}, true},
		{"transient failure requeues", models.StockAdjustment{ProductID: 2, Quantity: 10}, errors.New("database is locked"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acker := newAcknowledger()
			var got models.StockAdjustment
			rabbitmq.HandleDelivery(newDelivery(t, acker, tt.body), func(adj models.StockAdjustment) error {
				got = adj
				return tt.handlerErr
			})

			assert.Equal(t, uint(2), got.ProductID)
			if tt.wantAck {
				assert.Equal(t, 1, acker.acked)
				assert.Zero(t, acker.nacked)
			} else {
				assert.Equal(t, 1, acker.nacked)
				assert.True(t, acker.requeue)
			}
		})
	}
}

func TestHandleDelivery_MalformedBodyIsDropped(t *testing.T) {
	acker := newAcknowledger()
	called := false
	rabbitmq.HandleDelivery(amqp.Delivery{Acknowledger: acker, Body: []byte("{not json")}, func(models.StockAdjustment) error {
		called = true
		return nil
	})
	assert.False(t, called)
	assert.Equal(t, 1, acker.acked)
}

func TestConsumeStockAdjustments(t *testing.T) {
	client, ch := newClient(t)

	deliveries := make(chan amqp.Delivery, 1)
	ch.On("Consume", rabbitmq.StockAdjustmentsQueue, false).Return((<-chan amqp.Delivery)(deliveries), nil).Once()

	received := make(chan models.StockAdjustment, 1)
	require.NoError(t, client.ConsumeStockAdjustments(func(adj models.StockAdjustment) error {
		received <- adj
		return nil
	}))

	acker := newAcknowledger()
	deliveries <- newDelivery(t, acker, map[string]any{"product_id": 5, "quantity": "12"})
	close(deliveries)

	select {
	case adj := <-received:
		assert.Equal(t, uint(5), adj.ProductID)
		assert.Equal(t, "12", adj.Quantity)
	case <-time.After(2 * time.Second):
		t.Fatal("stock adjustment was not delivered")
	}
	select {
	case <-acker.done:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery was not acknowledged")
	}
	ch.AssertExpectations(t)
}
