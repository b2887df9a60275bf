package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"yatra-booking/internal/config"
	"yatra-booking/internal/infrastructure/currency"
	"yatra-booking/internal/logger"
	"yatra-booking/internal/service"
)

func init() {
	// Request bodies are closed shapes; unknown keys are a 400.
	binding.EnableDecoderDisallowUnknownFields = true
}

type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type RateQuoter interface {
	QuoteFor(ctx context.Context, country string) currency.Quote
}

type Deps struct {
	Checkout service.CheckoutService
	Bookings service.BookingService
	Catalog  service.CatalogService
	Admin    service.AdminService
	Rates    RateQuoter
	Health   HealthChecker
}

type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	deps   Deps
	store  *sessions.CookieStore
	engine *gin.Engine
	http   *http.Server
}

func NewServer(cfg *config.Config, log *zap.Logger, deps Deps) *Server {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	e := gin.New()
	e.HandleMethodNotAllowed = true
	e.Use(logger.GinRecovery(log), logger.GinMiddleware(log))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	s := &Server{
		cfg:    cfg,
		logger: log,
		deps:   deps,
		store:  newSessionStore(cfg.Session),
		engine: e,
	}
	s.routes()
	s.http = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("address", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) routes() {
	e := s.engine
	e.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	e.GET("/health", s.health)

	api := e.Group("/api")

	api.POST("/bookings", s.createBooking)
	api.GET("/bookings", s.getBookingByQuery)
	api.GET("/bookings/:id", s.getBooking)

	api.POST("/payments/create-order", s.createOrder)
	api.POST("/payments/verify", s.verifyPayment)
	api.GET("/payments/:orderId", s.getPayment)

	api.GET("/currency", s.currency)

	api.GET("/tours", s.listTours)
	api.GET("/tours/:slug", s.getTour)
	api.GET("/tours/:slug/departures", s.listDepartures)
	api.GET("/tours/:slug/quote", s.quote)

	api.POST("/inquiries", s.createInquiry)
	api.GET("/testimonials/featured", s.featuredTestimonials)
	api.POST("/testimonials", s.submitTestimonial)

	admin := api.Group("/admin")
	admin.POST("/login", s.login)
	admin.POST("/logout", s.logout)
	admin.GET("/session", s.session)

	guarded := admin.Group("", s.requireAdmin())
	guarded.GET("/stats", s.stats)
	guarded.GET("/inquiries", s.listInquiries)
	guarded.PATCH("/inquiries/:id", s.updateInquiry)
	guarded.GET("/testimonials", s.listTestimonials)
	guarded.PATCH("/testimonials/:id", s.updateTestimonial)
	guarded.GET("/bookings", s.listBookings)
	guarded.PATCH("/bookings/:id", s.updateBooking)
	guarded.POST("/tours", s.createTour)
	guarded.PATCH("/tours/:id", s.updateTour)
	guarded.POST("/tours/:id/departures", s.createDeparture)
	guarded.GET("/payments", s.listPayments)
	guarded.GET("/settlements", s.listSettlements)
}

func (s *Server) health(c *gin.Context) {
	stats := s.deps.Health.Health(c.Request.Context())
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
