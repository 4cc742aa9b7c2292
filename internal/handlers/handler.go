package handlers

import (
	"net/http"
	"time"

	"ecommerce_backend/internal/logger"
	"ecommerce_backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	livenessText = "Backend is working"
	statusOK     = "ok"
	corsMaxAge   = 12 * time.Hour
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	allowedOrigins []string
}

// Option customizes a Handler.
type Option func(*Handler)

// WithAllowedOrigins enables CORS with credentials for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(h *Handler) { h.allowedOrigins = origins }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(h.recovered), h.requestLogger)
	if len(h.allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     h.allowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           corsMaxAge,
		}))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.liveness)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerItemRoutes(router)
	h.registerCartRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/signup", h.signUp)
	r.POST("/login", h.login)
}

func (h *Handler) registerItemRoutes(r *gin.Engine) {
	r.GET("/items", h.listItems)

	items := r.Group("/items", h.authenticate)
	{
		// Body example: {"name":"Book","price":10,"category":"books"}
		items.POST("", h.createItem)
		items.PUT("/:id", h.updateItem)
		items.DELETE("/:id", h.deleteItem)
	}
}

func (h *Handler) registerCartRoutes(r *gin.Engine) {
	cart := r.Group("/cart", h.authenticate)
	{
		cart.GET("", h.getCart)
		// Body example: {"itemId":"..."}
		cart.POST("", h.addToCart)
		cart.DELETE("/:itemId", h.removeFromCart)
		cart.GET("/ws", h.watchCart)
	}
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Liveness
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) liveness(c *gin.Context) {
	c.String(http.StatusOK, livenessText)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
