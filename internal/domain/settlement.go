package domain

import (
	"time"

	"github.com/google/uuid"
)

// SettlementPhase records how far the create/verify flow got for one
// gateway order, so the reconciliation worker can find half-finished work.
type SettlementPhase string

const (
	// The gateway accepted the order but no local payment row exists.
	PhaseOrderOrphaned SettlementPhase = "order_orphaned"
	// The payment is captured; the booking may still show unpaid.
	PhasePaymentCaptured SettlementPhase = "payment_captured"
	PhaseSettled         SettlementPhase = "settled"
)

type Settlement struct {
	GatewayOrderID string          `json:"gatewayOrderId"`
	PaymentID      *uuid.UUID      `json:"paymentId"`
	BookingID      *uuid.UUID      `json:"bookingId"`
	Phase          SettlementPhase `json:"phase"`
	Attempts       int             `json:"attempts"`
	LastError      *string         `json:"lastError"`
	Note           *string         `json:"note"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
