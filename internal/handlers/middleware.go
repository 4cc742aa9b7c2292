package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by authenticate.
const (
	ctxUserID = "userId"
	ctxEmail  = "email"
)

const (
	errTokenMissing = "Token missing"
	errTokenInvalid = "Invalid token"
)

// authenticate answers 401 when no token is sent and 403 when the token
// cannot be verified (bad signature, expired, wrong scheme).
func (h *Handler) authenticate(c *gin.Context) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, _ := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	isBearer := strings.EqualFold(scheme, "Bearer")

	if header == "" || (isBearer && token == "") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": errTokenMissing,
		})
		return
	}
	if !isBearer {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": errTokenInvalid,
		})
		return
	}

	identity, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": errTokenInvalid,
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, identity.UserID)
	c.Set(ctxEmail, identity.Email)
	c.Next()
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// requestLogger writes one line per request once the handler chain is done.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}

// recovered turns a handler panic into a 500 so the process keeps serving.
func (h *Handler) recovered(c *gin.Context, err any) {
	if h.log != nil {
		h.log.Errorw("http_panic_recovered", "path", c.Request.URL.Path, "err", err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal})
}
