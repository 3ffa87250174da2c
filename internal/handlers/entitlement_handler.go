package handlers

import (
	"net/http"

	"readly_backend/internal/middleware"
	"readly_backend/internal/models"
	"readly_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// EntitlementHandler - разовые разблокировки глав, журнал и
// накопительный счетчик скачивания. Все маршруты требуют аутентификации.
type EntitlementHandler struct {
	*BaseHandler
	unlockService   services.ChapterUnlockService
	journalService  services.JournalService
	downloadService services.DownloadService
}

func NewEntitlementHandler(
	base *BaseHandler,
	unlockService services.ChapterUnlockService,
	journalService services.JournalService,
	downloadService services.DownloadService,
) *EntitlementHandler {
	return &EntitlementHandler{
		BaseHandler:     base,
		unlockService:   unlockService,
		journalService:  journalService,
		downloadService: downloadService,
	}
}

func (h *EntitlementHandler) RegisterRoutes(r *gin.RouterGroup) {
	unlocks := r.Group("/books/:bookId/unlocks")
	unlocks.Use(middleware.AuthMiddleware())
	{
		unlocks.GET("", h.ListUnlocks)
		unlocks.POST("", h.UnlockChapter)
	}

	journal := r.Group("/journal")
	journal.Use(middleware.AuthMiddleware())
	{
		journal.GET("/status", h.GetJournalStatus)
		journal.POST("/ad-reward", h.ExtendJournal)
	}

	downloads := r.Group("/books/:bookId/download")
	downloads.Use(middleware.AuthMiddleware())
	{
		downloads.GET("/status", h.GetDownloadStatus)
		downloads.POST("/ad-reward", h.WatchDownloadAd)
	}
}

func (h *EntitlementHandler) ListUnlocks(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	numbers, err := h.unlockService.ListUnlocks(h.GetDB(c), userID, c.Param("bookId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapter_numbers": numbers})
}

func (h *EntitlementHandler) UnlockChapter(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req models.UnlockChapterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.unlockService.UnlockChapter(h.GetDB(c), userID, c.Param("bookId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Повторная разблокировка - тоже успех
	status := http.StatusCreated
	if resp.AlreadyGranted {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

func (h *EntitlementHandler) GetJournalStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, err := h.journalService.GetStatus(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *EntitlementHandler) ExtendJournal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req models.AdRewardRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	status, err := h.journalService.ExtendByAd(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *EntitlementHandler) GetDownloadStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, err := h.downloadService.GetStatus(h.GetDB(c), userID, c.Param("bookId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *EntitlementHandler) WatchDownloadAd(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req models.AdRewardRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	status, err := h.downloadService.WatchAd(h.GetDB(c), userID, c.Param("bookId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
