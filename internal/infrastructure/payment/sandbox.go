package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Sandbox is an in-memory gateway for local runs and tests. It keeps the
// orders it issued and can simulate the customer completing checkout.
type Sandbox struct {
	mu     sync.RWMutex
	orders map[string]*Order
	signer *Signer
	keyID  string
}

func NewSandbox(keyID string, signer *Signer) *Sandbox {
	if keyID == "" {
		keyID = "rzp_test_sandbox"
	}
	return &Sandbox{
		orders: make(map[string]*Order),
		signer: signer,
		keyID:  keyID,
	}
}

func (s *Sandbox) KeyID() string {
	return s.keyID
}

func (s *Sandbox) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("sandbox: amount must be positive, got %d", req.Amount)
	}

	o := &Order{
		ID:       "order_" + shortID(),
		Amount:   req.Amount,
		Currency: req.Currency,
		Status:   OrderCreated,
		Receipt:  req.Receipt,
	}

	s.mu.Lock()
	s.orders[o.ID] = o
	s.mu.Unlock()

	out := *o
	return &out, nil
}

func (s *Sandbox) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	out := *o
	return &out, nil
}

// Capture plays the customer's side of checkout: it marks the order paid
// and returns the payment id and signature the browser would post back.
func (s *Sandbox) Capture(orderID string) (paymentID, signature string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return "", "", ErrOrderNotFound
	}
	o.Status = OrderPaid
	paymentID = "pay_" + shortID()
	return paymentID, s.signer.Sign(orderID, paymentID), nil
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}
