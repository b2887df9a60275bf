package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatra-booking/internal/service"
)

func (s *Server) login(c *gin.Context) {
	var req service.LoginRequest
	if !s.bind(c, &req) {
		return
	}
	admin, err := s.deps.Admin.Login(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	// A fresh session even if the cookie was unreadable.
	sess, _ := s.store.New(c.Request, sessionName)
	sess.Values[sessionKeyID] = admin.ID.String()
	if err := sess.Save(c.Request, c.Writer); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "admin": adminView(admin)})
}

func (s *Server) logout(c *gin.Context) {
	sess, _ := s.store.New(c.Request, sessionName)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request, c.Writer); err != nil {
		s.logger.Warn("session clear failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) session(c *gin.Context) {
	admin, ok := s.currentAdmin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false, "message": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "admin": adminView(admin)})
}

func (s *Server) stats(c *gin.Context) {
	st, err := s.deps.Admin.Stats(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) listInquiries(c *gin.Context) {
	out, err := s.deps.Admin.ListInquiries(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateInquiry(c *gin.Context) {
	id, ok := s.pathID(c, "Inquiry")
	if !ok {
		return
	}
	var req service.UpdateInquiryRequest
	if !s.bind(c, &req) {
		return
	}
	inq, err := s.deps.Admin.UpdateInquiry(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inq)
}

func (s *Server) listTestimonials(c *gin.Context) {
	out, err := s.deps.Admin.ListTestimonials(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateTestimonial(c *gin.Context) {
	id, ok := s.pathID(c, "Testimonial")
	if !ok {
		return
	}
	var req service.UpdateTestimonialRequest
	if !s.bind(c, &req) {
		return
	}
	t, err := s.deps.Admin.UpdateTestimonial(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) listBookings(c *gin.Context) {
	out, err := s.deps.Bookings.ListBookings(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateBooking(c *gin.Context) {
	id, ok := s.pathID(c, "Booking")
	if !ok {
		return
	}
	var req service.UpdateBookingRequest
	if !s.bind(c, &req) {
		return
	}
	b, err := s.deps.Bookings.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) createTour(c *gin.Context) {
	var req service.TourRequest
	if !s.bind(c, &req) {
		return
	}
	t, err := s.deps.Admin.CreateTour(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTour(c *gin.Context) {
	id, ok := s.pathID(c, "Tour")
	if !ok {
		return
	}
	var patch service.TourPatch
	if !s.bind(c, &patch) {
		return
	}
	t, err := s.deps.Admin.UpdateTour(c.Request.Context(), id, patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) createDeparture(c *gin.Context) {
	id, ok := s.pathID(c, "Tour")
	if !ok {
		return
	}
	var req service.DepartureRequest
	if !s.bind(c, &req) {
		return
	}
	d, err := s.deps.Admin.CreateDeparture(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (s *Server) listPayments(c *gin.Context) {
	out, err := s.deps.Admin.ListPayments(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listSettlements(c *gin.Context) {
	out, err := s.deps.Admin.ListSettlements(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
