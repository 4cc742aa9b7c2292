package handlers

import (
	"errors"
	"net/http"

	"ecommerce_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Response messages.
const (
	msgSignupOK    = "Signup successful"
	msgItemDeleted = "Item deleted"

	errUserExists         = "User already exists"
	errUserNotFound       = "User not found"
	errInvalidCredentials = "Invalid credentials"
	errTooManyAttempts    = "Too many failed login attempts, try again later"
	errItemNotFound       = "Item not found"
	errCartNotFound       = "Cart not found"
	errMaxPriceInvalid    = "invalid 'maxPrice'; use a number"
	errInternal           = "internal server error"
)

// Sign-up conflicts and login failures answer 400, as existing clients expect.
var errorStatuses = []struct {
	target error
	code   int
	msg    string
}{
	{service.ErrUserExists, http.StatusBadRequest, errUserExists},
	{service.ErrUserNotFound, http.StatusBadRequest, errUserNotFound},
	{service.ErrInvalidPassword, http.StatusBadRequest, errInvalidCredentials},
	{service.ErrTooManyAttempts, http.StatusTooManyRequests, errTooManyAttempts},
	{service.ErrItemNotFound, http.StatusNotFound, errItemNotFound},
	{service.ErrCartNotFound, http.StatusNotFound, errCartNotFound},
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError maps domain errors to their status; anything else is a 500.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	for _, m := range errorStatuses {
		if errors.Is(err, m.target) {
			if h.log != nil {
				h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
			}
			c.JSON(m.code, gin.H{"error": m.msg})
			return
		}
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}

	h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
}
