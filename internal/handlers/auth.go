package handlers

import (
	"errors"
	"net/http"
	"time"

	"auth_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// Response message constants, kept identical to the documented wire contract.
const (
	msgAllFieldsRequired     = "All fields are required"
	msgEmailPasswordRequired = "Email and password are required"
	msgUserExists            = "User already exists"
	msgInvalidCreds          = "Invalid credentials"
	msgSignupOK              = "User registered successfully"
	msgLoginOK               = "Login successful"
	msgLogoutOK              = "Logged out successfully"
	msgDatabaseError         = "Database error"
	msgCreateUserFailed      = "Error creating user"
	msgServerError           = "Server error"
)

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// failJSON writes the uniform {success:false, message} envelope.
func failJSON(c *gin.Context, httpCode int, msg string) {
	c.JSON(httpCode, gin.H{"success": false, "message": msg})
}

// authErrorStatus maps a workflow error to its HTTP status and public message.
func authErrorStatus(err error) (int, string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Msg
	case errors.Is(err, service.ErrUserExists):
		return http.StatusConflict, msgUserExists
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCreds
	case errors.Is(err, service.ErrCreateUser):
		return http.StatusInternalServerError, msgCreateUserFailed
	case errors.Is(err, service.ErrStore):
		return http.StatusInternalServerError, msgDatabaseError
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

// cookieMaxAge converts a session expiry into a cookie max-age in seconds.
func cookieMaxAge(expiresAt time.Time) int {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	return maxAge
}

// sessionToken reads the session cookie; empty string when absent.
func sessionToken(c *gin.Context) string {
	token, err := c.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return token
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   signUpRequest  true  "Credentials"
// @Success      201   {object}  map[string]interface{}  "success, message, userId"
// @Failure      400   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /api/signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		failJSON(c, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		code, msg := authErrorStatus(err)
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "status", code, "err", err)
		}
		failJSON(c, code, msg)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": msgSignupOK,
		"userId":  id,
	})
}

// @Summary      Log in and receive a session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   logInRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "success, message, username"
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /api/login [post]
func (h *Handler) logIn(c *gin.Context) {
	var input logInRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		failJSON(c, http.StatusBadRequest, msgEmailPasswordRequired)
		return
	}

	sess, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		code, msg := authErrorStatus(err)
		if h.log != nil {
			h.log.Infow("auth_log_in_failed", "status", code, "err", err)
		}
		failJSON(c, code, msg)
		return
	}

	// Cookie lifetime tracks the server-side session so the two expire together.
	c.SetCookie(sessionCookieName, sess.Token, cookieMaxAge(sess.ExpiresAt), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  msgLoginOK,
		"username": sess.Username,
	})
}

// @Summary      Report session status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "authenticated, username?"
// @Router       /api/check-auth [get]
func (h *Handler) checkAuth(c *gin.Context) {
	sess, ok := h.services.CheckAuth(sessionToken(c))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      sess.Username,
	})
}

// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/logout [get]
func (h *Handler) logOut(c *gin.Context) {
	h.services.Logout(sessionToken(c))
	// Expire the cookie on the client as well.
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msgLogoutOK,
	})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
