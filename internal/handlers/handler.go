package handlers

import (
	"auth_portal/internal/logger"
	"auth_portal/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// sessionCookieName carries the opaque session token. HttpOnly, 1h max age.
const sessionCookieName = "session_token"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	webDir   string
}

// NewHandler constructs a new HTTP handler with dependencies. webDir is the
// directory holding the login/signup/dashboard pages.
func NewHandler(services *service.Service, log *logger.Logger, webDir string) *Handler {
	if webDir == "" {
		webDir = "web"
	}
	return &Handler{services: services, log: log, webDir: webDir}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth API endpoints
	h.registerAuthRoutes(router)

	// HTML pages (dashboard behind the session guard)
	h.registerPageRoutes(router)

	// Live session status over WebSocket — same port
	router.GET("/ws/session", h.wsSessionStatus)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/signup", h.signUp)
		api.POST("/login", h.logIn)
		api.GET("/check-auth", h.checkAuth)
		api.GET("/logout", h.logOut)
	}
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.loginPage)
	r.GET("/signup", h.signupPage)
	r.GET("/dashboard", h.requireSession, h.dashboardPage)
}
