package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both sign-up and login.
type authCredentials struct {
	Email    string `json:"email" binding:"required,email" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"pw"`
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string  "message"
// @Failure      400   {object}  map[string]string  "invalid body or user already exists"
// @Failure      500   {object}  map[string]string
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if _, err := h.services.SignUp(c.Request.Context(), input.Email, input.Password); err != nil {
		h.respondError(c, "auth_sign_up_failed", err, "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgSignupOK})
}

// @Summary      Log in
// @Description  Returns a bearer token valid for one hour.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string  "user not found or invalid credentials"
// @Failure      429   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, "auth_login_failed", err, "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
