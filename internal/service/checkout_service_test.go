package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
	"github.com/cristianlarad/ARCADE-MAX/internal/repository"
)

// Mock OrderStore
type mockOrderStore struct {
	mu      sync.Mutex
	created []*entity.Order
	err     error
}

func (m *mockOrderStore) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	order.ID = len(m.created) + 1
	m.created = append(m.created, order)
	return order, nil
}

// Mock IdempotencyClaimer
type mockIdempotency struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMockIdempotency() *mockIdempotency {
	return &mockIdempotency{seen: make(map[string]bool)}
}

func (m *mockIdempotency) Claim(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

// Mock StockChecker
type mockStock struct {
	mu       sync.Mutex
	soldOut  map[string]bool
	err      error
	requests int
}

func (m *mockStock) CheckStock(ctx context.Context, productID string, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	if m.err != nil {
		return false, m.err
	}
	return !m.soldOut[productID], nil
}

// Mock EventWriter
type mockEventWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
}

func (m *mockEventWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

// Mock Notifier
type mockNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (m *mockNotifier) Success(session, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, message)
}

func (m *mockNotifier) Error(session, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

type checkoutFixture struct {
	carts    *repository.CartStore
	orders   *mockOrderStore
	idem     *mockIdempotency
	stock    *mockStock
	writer   *mockEventWriter
	notifier *mockNotifier
	svc      *CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		carts:    repository.NewCartStore(),
		orders:   &mockOrderStore{},
		idem:     newMockIdempotency(),
		stock:    &mockStock{soldOut: make(map[string]bool)},
		writer:   &mockEventWriter{},
		notifier: &mockNotifier{},
	}
	f.svc = NewCheckoutService(f.carts, f.orders, f.idem, f.stock, f.writer, f.notifier)
	return f
}

func TestCheckout_Success(t *testing.T) {
	f := newCheckoutFixture()
	f.carts.AddItem("ana@example.com", entity.CartLine{ProductID: "L1", Name: "Nebula 14", UnitPrice: "$150.00", Quantity: 2})

	order, err := f.svc.Checkout(context.Background(), "ana@example.com", CheckoutRequest{
		PaymentMethod: "card",
		Address:       "Av. Siempre Viva 742",
		IdempotentKey: "key-1",
	})
	require.NoError(t, err)

	assert.InDelta(t, 300.00, order.Subtotal, 1e-9)
	assert.InDelta(t, 48.00, order.Tax, 1e-9)
	assert.InDelta(t, 0, order.Shipping, 1e-9)
	assert.InDelta(t, 15.00, order.Discount, 1e-9)
	assert.InDelta(t, 333.00, order.Total, 1e-9)
	assert.Equal(t, "created", order.Status)
	require.Len(t, order.Lines, 1)
	assert.InDelta(t, 150.00, order.Lines[0].UnitPrice, 1e-9)
	assert.InDelta(t, 300.00, order.Lines[0].LineTotal, 1e-9)

	assert.Len(t, f.orders.created, 1, "order persisted")
	assert.Len(t, f.writer.messages, 1, "order event published")
	assert.Contains(t, string(f.writer.messages[0].Key), "order.created.")
	assert.Empty(t, f.carts.Lines("ana@example.com"), "cart cleared after acceptance")
}

func TestCheckout_DuplicateKey(t *testing.T) {
	f := newCheckoutFixture()
	f.carts.AddItem("s", entity.CartLine{ProductID: "L1", UnitPrice: "$50.00", Quantity: 1})

	_, err := f.svc.Checkout(context.Background(), "s", CheckoutRequest{IdempotentKey: "key-1"})
	require.NoError(t, err)

	// Retried submission with the same key must not create a second order.
	f.carts.AddItem("s", entity.CartLine{ProductID: "L1", UnitPrice: "$50.00", Quantity: 1})
	_, err = f.svc.Checkout(context.Background(), "s", CheckoutRequest{IdempotentKey: "key-1"})
	assert.ErrorIs(t, err, ErrDuplicateCheckout)
	assert.Len(t, f.orders.created, 1)
}

func TestCheckout_GeneratedKeyWhenMissing(t *testing.T) {
	f := newCheckoutFixture()
	f.carts.AddItem("s", entity.CartLine{ProductID: "L1", UnitPrice: "$50.00", Quantity: 1})

	order, err := f.svc.Checkout(context.Background(), "s", CheckoutRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, order.IdempotentKey)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.Checkout(context.Background(), "s", CheckoutRequest{IdempotentKey: "key-1"})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.orders.created)
	assert.Empty(t, f.writer.messages)
}

func TestCheckout_OutOfStock(t *testing.T) {
	f := newCheckoutFixture()
	f.stock.soldOut["L2"] = true
	f.carts.AddItem("s", entity.CartLine{ProductID: "L1", UnitPrice: "$50.00", Quantity: 1})
	f.carts.AddItem("s", entity.CartLine{ProductID: "L2", UnitPrice: "$80.00", Quantity: 1})

	_, err := f.svc.Checkout(context.Background(), "s", CheckoutRequest{IdempotentKey: "key-1"})
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Empty(t, f.orders.created)
	assert.Len(t, f.carts.Lines("s"), 2, "failed checkout leaves the cart untouched")
}

func TestCheckout_ChecksEveryLine(t *testing.T) {
	f := newCheckoutFixture()
	f.carts.AddItem("s", entity.CartLine{ProductID: "L1", UnitPrice: "$10.00", Quantity: 1})
	f.carts.AddItem("s", entity.CartLine{ProductID: "L2", UnitPrice: "$20.00", Quantity: 1})
	f.carts.AddItem("s", entity.CartLine{ProductID: "L3", UnitPrice: "$30.00", Quantity: 1})

	_, err := f.svc.Checkout(context.Background(), "s", CheckoutRequest{IdempotentKey: "key-1"})
	require.NoError(t, err)
	assert.Equal(t, 3, f.stock.requests)
}

func TestCheckout_PersistFailureKeepsCart(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.err = errors.New("shard down")
	f.carts.AddItem("s", entity.CartLine{ProductID: "L1", UnitPrice: "$50.00", Quantity: 1})

	_, err := f.svc.Checkout(context.Background(), "s", CheckoutRequest{IdempotentKey: "key-1"})
	assert.Error(t, err)
	assert.Len(t, f.carts.Lines("s"), 1, "cart is only cleared after the order is accepted")
	assert.Empty(t, f.writer.messages)
}
