package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
	"github.com/cristianlarad/ARCADE-MAX/internal/pricing"
	"github.com/cristianlarad/ARCADE-MAX/internal/repository"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrDuplicateCheckout = errors.New("idempotent key already exists")
	ErrOutOfStock        = errors.New("product out of stock")
)

// OrderStore persists accepted orders.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
}

// IdempotencyClaimer guards against a checkout being submitted twice.
type IdempotencyClaimer interface {
	Claim(ctx context.Context, key string) (bool, error)
}

// StockChecker asks the catalog whether a product can cover a quantity.
type StockChecker interface {
	CheckStock(ctx context.Context, productID string, quantity int) (bool, error)
}

// EventWriter is satisfied by *kafka.Writer.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Notifier surfaces transient success/error toasts. Implementations must not
// block the caller.
type Notifier interface {
	Success(session, message string)
	Error(session, message string)
}

// CheckoutRequest carries the fields the buyer fills in at checkout.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
	Address       string `json:"address"`
	IdempotentKey string `json:"-"`
}

// CheckoutService turns a session cart into a persisted order: idempotency
// claim, per-line stock check, sharded insert, order event, then cart clear.
// The cart is cleared only after the order is accepted.
type CheckoutService struct {
	carts       *repository.CartStore
	orders      OrderStore
	idempotency IdempotencyClaimer
	stock       StockChecker
	kafkaWriter EventWriter
	notifier    Notifier
}

func NewCheckoutService(carts *repository.CartStore, orders OrderStore, idempotency IdempotencyClaimer, stock StockChecker, kafkaWriter EventWriter, notifier Notifier) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		orders:      orders,
		idempotency: idempotency,
		stock:       stock,
		kafkaWriter: kafkaWriter,
		notifier:    notifier,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, session string, req CheckoutRequest) (*entity.Order, error) {
	key := req.IdempotentKey
	if key == "" {
		key = uuid.NewString()
	}

	ok, err := s.idempotency.Claim(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDuplicateCheckout
	}

	lines := s.carts.Lines(session)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Check stock for every line concurrently; the slowest catalog call
	// bounds the latency instead of the sum of all of them.
	stockCh := make(chan struct {
		ProductID string
		Available bool
		Error     error
	}, len(lines))

	for _, line := range lines {
		go func(line entity.CartLine) {
			available, err := s.stock.CheckStock(ctx, line.ProductID, line.Quantity)
			stockCh <- struct {
				ProductID string
				Available bool
				Error     error
			}{
				ProductID: line.ProductID,
				Available: available,
				Error:     err,
			}
		}(line)
	}

	for range lines {
		result := <-stockCh
		if result.Error != nil {
			logger.Error().Err(result.Error).Msgf("Error checking stock for product %s", result.ProductID)
			return nil, result.Error
		}
		if !result.Available {
			logger.Warn().Msgf("Product %s out of stock", result.ProductID)
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, result.ProductID)
		}
	}

	totals, err := pricing.ComputeTotals(lines)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		OrderID:       randomOrderID(),
		Session:       session,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Shipping:      totals.Shipping,
		Discount:      totals.Discount,
		Total:         totals.Total,
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		Status:        "created",
		IdempotentKey: key,
	}

	for _, line := range lines {
		unitPrice, err := pricing.ParseAmount(line.UnitPrice)
		if err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, entity.OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: unitPrice,
			Quantity:  line.Quantity,
			LineTotal: unitPrice * float64(line.Quantity),
		})
	}

	createdOrder, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	if err := s.publishOrderEvent(ctx, createdOrder, "created"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing event for order %d", createdOrder.OrderID)
		return nil, err
	}

	// The order is accepted; only now does the cart empty.
	s.carts.Clear(session)
	s.notifier.Success(session, fmt.Sprintf("Pedido %d creado exitosamente", createdOrder.OrderID))

	return createdOrder, nil
}

func (s *CheckoutService) publishOrderEvent(ctx context.Context, order *entity.Order, event string) error {
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order.%s.%d", event, order.OrderID)),
		Value: orderJSON,
	}

	return s.kafkaWriter.WriteMessages(ctx, msg)
}

func randomOrderID() int {
	return 100000 + rand.Intn(900000)
}
