package handler

import (
	"net/http"

	"kampuskitap/internal/logging"
	"kampuskitap/internal/middleware"
	"kampuskitap/internal/model"
	"kampuskitap/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadHandler issues presigned image upload URLs
type UploadHandler struct {
	service service.UploadService
	log     logging.Logger
}

func NewUploadHandler(s service.UploadService, log logging.Logger) *UploadHandler {
	return &UploadHandler{service: s, log: log}
}

func (h *UploadHandler) PresignImage(c *gin.Context) {
	userID, err := middleware.AuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	upload, err := h.service.PresignImageUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondError(c, h.log, "presigning upload", err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

func (h *UploadHandler) RegisterUploadRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/uploads/images", authMW, h.PresignImage)
}
