package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"yatra-booking/internal/config"
	"yatra-booking/internal/domain"
)

const (
	sessionName  = "yatra_admin"
	sessionKeyID = "admin_id"
	adminCtxKey  = "admin"
)

func newSessionStore(cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// requireAdmin resolves the session cookie to an active admin.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := s.currentAdmin(c)
		if !ok {
			s.respondError(c, domain.NewUnauthorized("Not authenticated"))
			return
		}
		c.Set(adminCtxKey, admin)
		c.Next()
	}
}

func (s *Server) currentAdmin(c *gin.Context) (*domain.Admin, bool) {
	sess, err := s.store.Get(c.Request, sessionName)
	if err != nil {
		// Tampered or signed with an old secret.
		s.logger.Warn("invalid admin session", zap.Error(err), zap.String("ip", c.ClientIP()))
		return nil, false
	}
	raw, _ := sess.Values[sessionKeyID].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	admin, err := s.deps.Admin.GetAdmin(c.Request.Context(), id)
	if err != nil {
		return nil, false
	}
	return admin, true
}

func adminView(a *domain.Admin) gin.H {
	return gin.H{
		"id":       a.ID,
		"username": a.Username,
		"name":     a.DisplayName(),
	}
}
