package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentCaptured PaymentStatus = "captured"
)

// CurrencyINR is the only currency orders are created in.
const CurrencyINR = "INR"

type Payment struct {
	ID               uuid.UUID     `json:"id"`
	BookingID        *uuid.UUID    `json:"bookingId"`
	GatewayOrderID   string        `json:"gatewayOrderId"`
	GatewayPaymentID *string       `json:"gatewayPaymentId"`
	GatewaySignature *string       `json:"gatewaySignature"`
	Amount           int64         `json:"amount"`
	Currency         string        `json:"currency"`
	Status           PaymentStatus `json:"status"`
	CustomerEmail    string        `json:"customerEmail"`
	CustomerPhone    string        `json:"customerPhone"`
	Receipt          string        `json:"receipt"`
	Notes            Notes         `json:"notes"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// Notes is the metadata bag echoed to the gateway and stored as JSONB.
type Notes map[string]string

func (n Notes) Value() (driver.Value, error) {
	if n == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(n)
}

func (n *Notes) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*n = Notes{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("notes: unsupported scan type")
	}
	out := Notes{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*n = out
	return nil
}
