package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

type razorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpay(keyID, keySecret string) Gateway {
	return &razorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

func (g *razorpayGateway) KeyID() string {
	return g.keyID
}

// The SDK is not context aware; ctx is only checked before the call.
func (g *razorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	return orderFromBody(body)
}

func (g *razorpayGateway) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := g.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay fetch order %s: %w", orderID, err)
	}
	return orderFromBody(body)
}

// orderFromBody maps the decoded JSON order entity. Numbers arrive as float64.
func orderFromBody(body map[string]interface{}) (*Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay: order response without id")
	}
	o := &Order{ID: id}
	o.Currency, _ = body["currency"].(string)
	o.Status, _ = body["status"].(string)
	o.Receipt, _ = body["receipt"].(string)
	switch amt := body["amount"].(type) {
	case float64:
		o.Amount = int64(amt)
	case int64:
		o.Amount = amt
	case int:
		o.Amount = int64(amt)
	}
	return o, nil
}
