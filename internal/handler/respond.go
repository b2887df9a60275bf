package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"yatra-booking/internal/domain"
)

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindSignatureInvalid:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the client-safe part of err. Causes are only logged.
func (s *Server) respondError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		s.logger.Error("unhandled error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	status := statusFor(de.Kind)
	if status >= http.StatusInternalServerError {
		s.logger.Error(de.Message,
			zap.String("kind", string(de.Kind)),
			zap.Error(de.Err),
			zap.String("path", c.Request.URL.Path),
		)
	}

	body := gin.H{"message": de.Message}
	if len(de.Details) > 0 {
		body["errors"] = de.Details
	}
	c.AbortWithStatusJSON(status, body)
}

// bind decodes the JSON body strictly; validation happens in the services.
func (s *Server) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.logger.Debug("rejected request body", zap.Error(err), zap.String("path", c.Request.URL.Path))
		s.respondError(c, domain.NewValidationError("Invalid request body", nil))
		return false
	}
	return true
}

// pathID parses a UUID path parameter. Ids that do not parse cannot
// exist, so they are reported as not found.
func (s *Server) pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, domain.NewNotFound(what+" not found"))
		return uuid.Nil, false
	}
	return id, true
}
