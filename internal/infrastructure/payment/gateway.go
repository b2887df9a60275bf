package payment

import (
	"context"
	"errors"
)

// Order statuses reported by the gateway.
const (
	OrderCreated   = "created"
	OrderAttempted = "attempted"
	OrderPaid      = "paid"
)

var ErrOrderNotFound = errors.New("gateway order not found")

type OrderRequest struct {
	Amount   int64 // minor units
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID       string
	Amount   int64
	Currency string
	Status   string
	Receipt  string
}

// Gateway is the subset of the payment provider the checkout flow needs.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	FetchOrder(ctx context.Context, orderID string) (*Order, error)
	// KeyID is the public key the browser opens the checkout modal with.
	KeyID() string
}
