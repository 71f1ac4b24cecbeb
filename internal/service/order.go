package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/peacockstore/peacock-api/internal/model"
	"github.com/peacockstore/peacock-api/internal/repository"
)

var ErrOrderFailed = errors.New("could not place order")

type OrderService struct {
	orderRepo repository.OrderRepository
	amqpCh    *amqp.Channel
	gate      *OfflineGate
}

func NewOrderService(orderRepo repository.OrderRepository, amqpCh *amqp.Channel, gate *OfflineGate) *OrderService {
	return &OrderService{orderRepo: orderRepo, amqpCh: amqpCh, gate: gate}
}

// Submit persists a new order and hands it to fulfillment. The stored
// record is returned; any storage failure collapses into ErrOrderFailed.
func (s *OrderService) Submit(ctx context.Context, userEmail string, items []model.CartItem, total decimal.Decimal, shipping model.ShippingDetails) (*model.Order, error) {
	if err := s.gate.Check(); err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:              NewOrderID(),
		UserEmail:       userEmail,
		Date:            time.Now().UTC(),
		Items:           items,
		Total:           total,
		Status:          model.OrderStatusProcessing,
		ShippingDetails: shipping,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderFailed, err)
	}

	// Fulfillment is asynchronous; a publish failure never fails the
	// order that is already on record.
	if s.amqpCh != nil {
		msg, _ := json.Marshal(model.OrderPlaced{OrderID: order.ID, UserEmail: order.UserEmail})
		_ = s.amqpCh.PublishWithContext(ctx, "", "orders", false, false, amqp.Publishing{
			ContentType:  "application/json",
			Body:         msg,
			DeliveryMode: amqp.Persistent,
		})
	}
	return order, nil
}

// ListForUser returns the purchaser's orders newest first. Offline mode
// has no order history, so the list is empty rather than an error.
func (s *OrderService) ListForUser(ctx context.Context, email string) ([]model.Order, error) {
	if s.gate.Offline() {
		return nil, nil
	}
	orders, err := s.orderRepo.ListByUserEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// NewOrderID builds a token from the current time plus random bytes, so
// two orders placed in the same millisecond still get distinct ids.
func NewOrderID() string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("PEA-%d-%s", time.Now().UnixMilli(), strings.ToUpper(hex.EncodeToString(suffix)))
}
