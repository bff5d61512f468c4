package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by requireSession for downstream handlers.
const (
	ctxKeyUserID   = "userId"
	ctxKeyUsername = "username"
)

// requireSession gates protected pages: without a valid session the caller is
// sent back to the entry page. Pure function of session presence.
func (h *Handler) requireSession(c *gin.Context) {
	sess, ok := h.services.CheckAuth(sessionToken(c))
	if !ok {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}

	c.Set(ctxKeyUserID, sess.UserID)
	c.Set(ctxKeyUsername, sess.Username)
	c.Next()
}
