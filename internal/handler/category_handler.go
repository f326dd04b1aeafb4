package handler

import (
	"net/http"

	"kampuskitap/internal/logging"
	"kampuskitap/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service service.CategoryService
	log     logging.Logger
}

func NewCategoryHandler(s service.CategoryService, log logging.Logger) *CategoryHandler {
	return &CategoryHandler{service: s, log: log}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "listing categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) RegisterCategoryRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
}
