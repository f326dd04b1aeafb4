package handler

import (
	"context"
	"net/http"
	"time"

	"kampuskitap/internal/logging"
	"kampuskitap/internal/middleware"
	"kampuskitap/internal/service"
	"kampuskitap/internal/utils"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is everything the router needs
type Deps struct {
	Auth       service.AuthService
	Products   service.ProductService
	Categories service.CategoryService
	Uploads    service.UploadService
	JWT        *utils.JWTUtil
	DB         Pinger
	Log        logging.Logger
	CORS       []string
}

// NewRouter builds the gin engine with all API routes mounted under /api
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Log),
		gin.Recovery(),
		middleware.CORS(d.CORS),
	)

	jwtAuthMW := middleware.JWTAuthMiddleware(d.JWT)

	apiGroup := router.Group("/api")
	NewAuthHandler(d.Auth, d.Log).RegisterAuthRoutes(apiGroup)
	NewProductHandler(d.Products, d.Log).RegisterProductRoutes(apiGroup, jwtAuthMW)
	NewCategoryHandler(d.Categories, d.Log).RegisterCategoryRoutes(apiGroup)
	NewUploadHandler(d.Uploads, d.Log).RegisterUploadRoutes(apiGroup, jwtAuthMW)

	router.GET("/health", func(c *gin.Context) {
		if d.DB == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := d.DB.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router
}
