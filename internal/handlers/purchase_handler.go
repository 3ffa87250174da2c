package handlers

import (
	"net/http"

	"readly_backend/internal/middleware"
	"readly_backend/internal/models"
	"readly_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	*BaseHandler
	purchaseService services.PurchaseService
}

func NewPurchaseHandler(base *BaseHandler, purchaseService services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		BaseHandler:     base,
		purchaseService: purchaseService,
	}
}

func (h *PurchaseHandler) RegisterRoutes(r *gin.RouterGroup) {
	purchases := r.Group("/purchases")
	purchases.Use(middleware.AuthMiddleware())
	{
		purchases.GET("", h.ListPurchases)
		purchases.POST("/confirm", h.ConfirmPurchase)
	}

	admin := r.Group("/admin/purchases")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("/:purchaseId/refund", h.Refund)
	}
}

func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	purchases, err := h.purchaseService.ListPurchases(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

func (h *PurchaseHandler) ConfirmPurchase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req models.ConfirmPurchaseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	purchase, err := h.purchaseService.ConfirmPurchase(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHandler) Refund(c *gin.Context) {
	if err := h.purchaseService.Refund(h.GetDB(c), c.Param("purchaseId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purchase refunded"})
}
