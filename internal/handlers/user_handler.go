package handlers

import (
	"net/http"

	"readly_backend/internal/middleware"
	"readly_backend/internal/models"
	"readly_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetMe)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:userId/suspend", h.SuspendUser)
		admin.PUT("/users/:userId/activate", h.ActivateUser)
		admin.GET("/stats", h.GetPlatformStats)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"role":          user.Role,
		"status":        user.Status,
		"is_verified":   user.IsVerified,
		"premium_until": user.PremiumUntil,
		"trial_used":    user.TrialUsed,
	})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	users, total, err := h.userService.ListUsers(h.GetDB(c), pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":     users,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *UserHandler) SuspendUser(c *gin.Context) {
	if err := h.userService.SuspendUser(h.GetDB(c), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User suspended"})
}

func (h *UserHandler) ActivateUser(c *gin.Context) {
	if err := h.userService.ActivateUser(h.GetDB(c), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User activated"})
}

func (h *UserHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.userService.GetPlatformStats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_trials":         stats.TotalTrials,
		"total_ad_grants":      stats.TotalAdGrants,
		"active_premium_users": stats.ActivePremiumUsers,
		"reward_actions":       stats.RewardActions,
	})
}
