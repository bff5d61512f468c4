package handlers

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

const (
	loginPageFile     = "login.html"
	signupPageFile    = "signup.html"
	dashboardPageFile = "dashboard.html"
)

func (h *Handler) servePage(c *gin.Context, name string) {
	c.File(filepath.Join(h.webDir, name))
}

// @Summary      Entry (login) page
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) loginPage(c *gin.Context) {
	h.servePage(c, loginPageFile)
}

// @Summary      Signup page
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string
// @Router       /signup [get]
func (h *Handler) signupPage(c *gin.Context) {
	h.servePage(c, signupPageFile)
}

// @Summary      Dashboard page (requires a valid session)
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string
// @Failure      302  {string}  string  "redirect to / when unauthenticated"
// @Router       /dashboard [get]
func (h *Handler) dashboardPage(c *gin.Context) {
	h.servePage(c, dashboardPageFile)
}
