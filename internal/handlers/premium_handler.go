package handlers

import (
	"net/http"

	"readly_backend/internal/middleware"
	"readly_backend/internal/models"
	"readly_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PremiumHandler struct {
	*BaseHandler
	premiumService services.PremiumService
}

func NewPremiumHandler(base *BaseHandler, premiumService services.PremiumService) *PremiumHandler {
	return &PremiumHandler{
		BaseHandler:    base,
		premiumService: premiumService,
	}
}

func (h *PremiumHandler) RegisterRoutes(r *gin.RouterGroup) {
	premium := r.Group("/premium")
	premium.Use(middleware.AuthMiddleware())
	{
		premium.GET("/status", h.GetStatus)
		premium.POST("/trial", h.StartTrial)
		premium.POST("/ad-reward", h.GrantAdReward)
	}
}

func (h *PremiumHandler) GetStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, err := h.premiumService.GetStatus(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *PremiumHandler) StartTrial(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, err := h.premiumService.StartTrial(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, status)
}

func (h *PremiumHandler) GrantAdReward(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req models.AdRewardRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	status, err := h.premiumService.GrantAdReward(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
