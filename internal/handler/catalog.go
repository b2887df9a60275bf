package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yatra-booking/internal/domain"
	"yatra-booking/internal/service"
)

func (s *Server) listTours(c *gin.Context) {
	tours, err := s.deps.Catalog.ListTours(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

func (s *Server) getTour(c *gin.Context) {
	t, err := s.deps.Catalog.GetTour(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) listDepartures(c *gin.Context) {
	deps, err := s.deps.Catalog.ListDepartures(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deps)
}

func (s *Server) quote(c *gin.Context) {
	travelers, err := strconv.Atoi(c.DefaultQuery("travelers", "1"))
	if err != nil {
		s.respondError(c, domain.NewValidationError("Invalid request",
			[]domain.FieldError{{Field: "travelers", Rule: "numeric"}}))
		return
	}
	q, err := s.deps.Catalog.Quote(c.Request.Context(), c.Param("slug"), travelers)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (s *Server) currency(c *gin.Context) {
	country := c.GetHeader(s.cfg.Currency.CountryHeader)
	c.JSON(http.StatusOK, s.deps.Rates.QuoteFor(c.Request.Context(), country))
}

func (s *Server) createInquiry(c *gin.Context) {
	var req service.CreateInquiryRequest
	if !s.bind(c, &req) {
		return
	}
	inq, err := s.deps.Catalog.CreateInquiry(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inq)
}

func (s *Server) featuredTestimonials(c *gin.Context) {
	ts, err := s.deps.Catalog.FeaturedTestimonials(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (s *Server) submitTestimonial(c *gin.Context) {
	var req service.CreateTestimonialRequest
	if !s.bind(c, &req) {
		return
	}
	t, err := s.deps.Catalog.SubmitTestimonial(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}
