package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yatra-booking/internal/config"
	"yatra-booking/internal/domain"
	"yatra-booking/internal/infrastructure/currency"
	"yatra-booking/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// The mocks embed the service interfaces so tests only stub what they hit.

type mockCheckout struct {
	mock.Mock
	service.CheckoutService
}

func (m *mockCheckout) CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.CreateOrderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateOrderResult), args.Error(1)
}

func (m *mockCheckout) VerifyPayment(ctx context.Context, req service.VerifyPaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockCheckout) GetPayment(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type mockBookings struct {
	mock.Mock
	service.BookingService
}

func (m *mockBookings) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookings) CreateBooking(ctx context.Context, req service.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockAdmin struct {
	mock.Mock
	service.AdminService
}

func (m *mockAdmin) Login(ctx context.Context, req service.LoginRequest) (*domain.Admin, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *mockAdmin) GetAdmin(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *mockAdmin) Stats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(*domain.Stats), args.Error(1)
}

type fixedRates struct{ rate float64 }

func (f fixedRates) QuoteFor(ctx context.Context, country string) currency.Quote {
	q := currency.Quote{Country: country, Currency: "INR", ExchangeRate: 1, InrToUsd: f.rate}
	if country == "US" {
		q.Currency, q.ExchangeRate = "USD", f.rate
	}
	return q
}

type stubHealth map[string]string

func (h stubHealth) Health(ctx context.Context) map[string]string { return h }

type fixture struct {
	checkout *mockCheckout
	bookings *mockBookings
	admin    *mockAdmin
	srv      *Server
}

func newFixture() *fixture {
	f := &fixture{
		checkout: new(mockCheckout),
		bookings: new(mockBookings),
		admin:    new(mockAdmin),
	}
	cfg := &config.Config{
		Env:         "test",
		HTTPAddr:    ":0",
		CORSOrigins: []string{"http://localhost:5173"},
		Session: config.SessionConfig{
			Secret: strings.Repeat("k", 32),
			MaxAge: time.Hour,
		},
		Currency: config.CurrencyConfig{CountryHeader: "X-Vercel-IP-Country"},
	}
	f.srv = NewServer(cfg, zap.NewNop(), Deps{
		Checkout: f.checkout,
		Bookings: f.bookings,
		Admin:    f.admin,
		Rates:    fixedRates{rate: 0.012},
		Health:   stubHealth{"status": "up"},
	})
	return f
}

func (f *fixture) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCreateOrder(t *testing.T) {
	t.Run("returns the canonical order contract", func(t *testing.T) {
		f := newFixture()
		pid := uuid.New()
		f.checkout.On("CreateOrder", mock.Anything, mock.MatchedBy(func(r service.CreateOrderRequest) bool {
			return r.Amount.String() == "2500" && r.CustomerEmail == "a@b.com"
		})).Return(&service.CreateOrderResult{
			OrderID: "order_1", Amount: 250000, Currency: "INR", PaymentID: pid, KeyID: "rzp_test",
		}, nil)

		w := f.do(http.MethodPost, "/api/payments/create-order",
			`{"amount":2500,"customerEmail":"a@b.com","customerPhone":"9876543210"}`)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "order_1", body["orderId"])
		assert.Equal(t, float64(250000), body["amount"])
		assert.Equal(t, "INR", body["currency"])
		assert.Equal(t, pid.String(), body["paymentId"])
		assert.NotContains(t, body, "id")
	})

	t.Run("unknown fields are rejected before the service", func(t *testing.T) {
		f := newFixture()
		w := f.do(http.MethodPost, "/api/payments/create-order",
			`{"amount":2500,"customerEmail":"a@b.com","customerPhone":"1","coupon":"FREE"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decode(t, w)["message"])
		f.checkout.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("validation details are returned", func(t *testing.T) {
		f := newFixture()
		f.checkout.On("CreateOrder", mock.Anything, mock.Anything).Return(nil,
			domain.NewValidationError("Missing required fields",
				[]domain.FieldError{{Field: "customerEmail", Rule: "required"}}))

		w := f.do(http.MethodPost, "/api/payments/create-order", `{"amount":2500,"customerPhone":"1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Missing required fields", body["message"])
		errs := body["errors"].([]any)
		require.Len(t, errs, 1)
		assert.Equal(t, "customerEmail", errs[0].(map[string]any)["field"])
	})

	t.Run("upstream causes are not leaked", func(t *testing.T) {
		f := newFixture()
		f.checkout.On("CreateOrder", mock.Anything, mock.Anything).Return(nil,
			domain.NewUpstreamError("Failed to create payment order", errors.New("key_secret rzp_live_x invalid")))

		w := f.do(http.MethodPost, "/api/payments/create-order",
			`{"amount":1,"customerEmail":"a@b.com","customerPhone":"1"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "rzp_live_x")
		assert.Equal(t, "Failed to create payment order", decode(t, w)["message"])
	})
}

func TestVerifyPayment(t *testing.T) {
	t.Run("accepts razorpay callback field names", func(t *testing.T) {
		f := newFixture()
		bookingID := uuid.New()
		f.checkout.On("VerifyPayment", mock.Anything, service.VerifyPaymentRequest{
			GatewayOrderID:   "order_1",
			GatewayPaymentID: "pay_1",
			GatewaySignature: "abc",
			BookingID:        &bookingID,
		}).Return(&domain.Payment{GatewayOrderID: "order_1", Status: domain.PaymentCaptured}, nil)

		w := f.do(http.MethodPost, "/api/payments/verify",
			`{"razorpayOrderId":"order_1","razorpayPaymentId":"pay_1","razorpaySignature":"abc","bookingId":"`+bookingID.String()+`"}`)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Payment verified successfully", body["message"])
		assert.Equal(t, "captured", body["payment"].(map[string]any)["status"])
	})

	t.Run("bad signature is a 400", func(t *testing.T) {
		f := newFixture()
		f.checkout.On("VerifyPayment", mock.Anything, mock.Anything).Return(nil, domain.NewSignatureInvalid())

		w := f.do(http.MethodPost, "/api/payments/verify",
			`{"gatewayOrderId":"order_1","gatewayPaymentId":"pay_1","gatewaySignature":"bad"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid payment signature", decode(t, w)["message"])
	})

	t.Run("unknown order is a 404", func(t *testing.T) {
		f := newFixture()
		f.checkout.On("VerifyPayment", mock.Anything, mock.Anything).Return(nil, domain.NewNotFound("Payment not found"))

		w := f.do(http.MethodPost, "/api/payments/verify",
			`{"gatewayOrderId":"order_x","gatewayPaymentId":"pay_1","gatewaySignature":"s"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed booking id is rejected", func(t *testing.T) {
		f := newFixture()
		w := f.do(http.MethodPost, "/api/payments/verify",
			`{"gatewayOrderId":"o","gatewayPaymentId":"p","gatewaySignature":"s","bookingId":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.checkout.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything)
	})
}

func TestGetPayment(t *testing.T) {
	f := newFixture()
	f.checkout.On("GetPayment", mock.Anything, "order_1").Return(&domain.Payment{GatewayOrderID: "order_1", Amount: 100}, nil)
	f.checkout.On("GetPayment", mock.Anything, "order_2").Return(nil, domain.NewNotFound("Payment not found"))

	w := f.do(http.MethodGet, "/api/payments/order_1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "order_1", decode(t, w)["gatewayOrderId"])

	w = f.do(http.MethodGet, "/api/payments/order_2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Payment not found", decode(t, w)["message"])
}

func TestBookings(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.bookings.On("GetBooking", mock.Anything, id.String()).Return(&domain.Booking{ID: id}, nil)
	f.bookings.On("GetBooking", mock.Anything, "").Return(nil,
		domain.NewValidationError("Booking ID is required", nil))

	w := f.do(http.MethodGet, "/api/bookings/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/bookings?id="+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/bookings", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Booking ID is required", decode(t, w)["message"])

	f.bookings.On("CreateBooking", mock.Anything, mock.Anything).Return(&domain.Booking{ID: id}, nil)
	w = f.do(http.MethodPost, "/api/bookings",
		`{"customerName":"Asha","customerEmail":"a@b.com","customerPhone":"1","numberOfTravelers":2,"totalAmount":250000}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodDelete, "/api/payments/create-order", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method not allowed", decode(t, w)["message"])
}

func TestCurrency(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/currency", nil)
	req.Header.Set("X-Vercel-IP-Country", "US")
	w := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "USD", body["currency"])
	assert.Equal(t, 0.012, body["exchangeRate"])
	assert.Equal(t, 0.012, body["inrToUsd"])
}

func TestHealth(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "up", decode(t, w)["status"])
}

func TestAdminSession(t *testing.T) {
	f := newFixture()
	admin := &domain.Admin{ID: uuid.New(), Username: "priya", IsActive: true}
	f.admin.On("Login", mock.Anything, service.LoginRequest{Username: "priya", Password: "pw"}).Return(admin, nil)
	f.admin.On("Login", mock.Anything, service.LoginRequest{Username: "priya", Password: "bad"}).
		Return(nil, domain.NewUnauthorized("Invalid credentials"))
	f.admin.On("GetAdmin", mock.Anything, admin.ID).Return(admin, nil)
	f.admin.On("Stats", mock.Anything).Return(&domain.Stats{TotalTours: 4}, nil)

	w := f.do(http.MethodGet, "/api/admin/stats", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/api/admin/login", `{"username":"priya","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w = f.do(http.MethodPost, "/api/admin/login", `{"username":"priya","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.True(t, cookies[0].HttpOnly)

	w = f.do(http.MethodGet, "/api/admin/stats", "", cookies...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decode(t, w)["totalTours"])

	w = f.do(http.MethodGet, "/api/admin/session", "", cookies...)
	assert.Equal(t, true, decode(t, w)["authenticated"])

	forged := &http.Cookie{Name: sessionName, Value: "tampered"}
	w = f.do(http.MethodGet, "/api/admin/stats", "", forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
