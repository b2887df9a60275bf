package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra-booking/internal/service"
)

func (s *Server) createBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if !s.bind(c, &req) {
		return
	}
	b, err := s.deps.Bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (s *Server) getBooking(c *gin.Context) {
	s.writeBooking(c, c.Param("id"))
}

func (s *Server) getBookingByQuery(c *gin.Context) {
	s.writeBooking(c, c.Query("id"))
}

func (s *Server) writeBooking(c *gin.Context, id string) {
	b, err := s.deps.Bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
