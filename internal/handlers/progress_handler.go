package handlers

import (
	"net/http"

	"readly_backend/internal/middleware"
	"readly_backend/internal/models"
	"readly_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	*BaseHandler
	progressService services.ProgressService
}

func NewProgressHandler(base *BaseHandler, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     base,
		progressService: progressService,
	}
}

func (h *ProgressHandler) RegisterRoutes(r *gin.RouterGroup) {
	progress := r.Group("/progress")
	progress.Use(middleware.AuthMiddleware())
	{
		progress.GET("/books/:bookId", h.GetProgress)
		progress.POST("/books/:bookId/chapters/:number/complete", h.MarkComplete)
		progress.PUT("/books/:bookId/chapters/:number/reflection", h.SaveReflection)
		progress.POST("/sync", h.Sync)
	}
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	payload, err := h.progressService.GetProgress(h.GetDB(c), userID, c.Param("bookId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *ProgressHandler) MarkComplete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	number, err := ParseParamInt(c, "number")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.progressService.MarkComplete(h.GetDB(c), userID, c.Param("bookId"), number); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chapter marked as completed"})
}

func (h *ProgressHandler) SaveReflection(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	number, err := ParseParamInt(c, "number")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req models.SaveReflectionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.progressService.SaveReflection(h.GetDB(c), userID, c.Param("bookId"), number, req.Reflection); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reflection saved"})
}

func (h *ProgressHandler) Sync(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req models.SyncProgressRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.progressService.Sync(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
