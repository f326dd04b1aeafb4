package handler

import (
	"net/http"
	"strconv"

	"kampuskitap/internal/logging"
	"kampuskitap/internal/middleware"
	"kampuskitap/internal/model"
	"kampuskitap/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles product listing requests
type ProductHandler struct {
	service service.ProductService
	log     logging.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(s service.ProductService, log logging.Logger) *ProductHandler {
	return &ProductHandler{service: s, log: log}
}

func parseProductID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "listing products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "fetching product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, err := middleware.AuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, "creating product", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, err := middleware.AuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, userID, req)
	if err != nil {
		respondError(c, h.log, "updating product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, err := middleware.AuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.service.DeleteProduct(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.log, "deleting product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// RegisterProductRoutes registers product routes; reads are public, writes need authMW
func (h *ProductHandler) RegisterProductRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)

		products.POST("", authMW, h.CreateProduct)
		products.PUT("/:id", authMW, h.UpdateProduct)
		products.DELETE("/:id", authMW, h.DeleteProduct)
	}
}
