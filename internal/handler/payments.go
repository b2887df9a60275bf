package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yatra-booking/internal/service"
)

// verifyBody accepts both the generic field names and the ones the
// Razorpay checkout callback produces.
type verifyBody struct {
	GatewayOrderID    string     `json:"gatewayOrderId"`
	GatewayPaymentID  string     `json:"gatewayPaymentId"`
	GatewaySignature  string     `json:"gatewaySignature"`
	RazorpayOrderID   string     `json:"razorpayOrderId"`
	RazorpayPaymentID string     `json:"razorpayPaymentId"`
	RazorpaySignature string     `json:"razorpaySignature"`
	BookingID         *uuid.UUID `json:"bookingId"`
}

func (b verifyBody) request() service.VerifyPaymentRequest {
	return service.VerifyPaymentRequest{
		GatewayOrderID:   firstNonEmpty(b.GatewayOrderID, b.RazorpayOrderID),
		GatewayPaymentID: firstNonEmpty(b.GatewayPaymentID, b.RazorpayPaymentID),
		GatewaySignature: firstNonEmpty(b.GatewaySignature, b.RazorpaySignature),
		BookingID:        b.BookingID,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (s *Server) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if !s.bind(c, &req) {
		return
	}
	res, err := s.deps.Checkout.CreateOrder(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) verifyPayment(c *gin.Context) {
	var body verifyBody
	if !s.bind(c, &body) {
		return
	}
	p, err := s.deps.Checkout.VerifyPayment(c.Request.Context(), body.request())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment verified successfully",
		"payment": p,
	})
}

func (s *Server) getPayment(c *gin.Context) {
	p, err := s.deps.Checkout.GetPayment(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
