package handlers

import (
	"net/http"

	"readly_backend/internal/middleware"
	"readly_backend/internal/models"
	"readly_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// BookHandler обслуживает каталог, оглавление и чтение глав.
// Чтение доступно анониму: OptionalAuthMiddleware дает превью-тир.
type BookHandler struct {
	*BaseHandler
	bookService   services.BookService
	accessService services.AccessService
}

func NewBookHandler(base *BaseHandler, bookService services.BookService, accessService services.AccessService) *BookHandler {
	return &BookHandler{
		BaseHandler:   base,
		bookService:   bookService,
		accessService: accessService,
	}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:bookId", h.GetBook)
		books.GET("/:bookId/chapters", middleware.OptionalAuthMiddleware(), h.GetTableOfContents)
		books.GET("/:bookId/chapters/:number", middleware.OptionalAuthMiddleware(), h.GetChapter)
	}

	admin := r.Group("/admin/books")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.ListAllBooks)
		admin.POST("", h.CreateBook)
		admin.PUT("/:bookId", h.UpdateBook)
		admin.DELETE("/:bookId", h.DeleteBook)
		admin.POST("/:bookId/chapters", h.CreateChapter)
	}
}

func (h *BookHandler) ListBooks(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	books, total, err := h.bookService.ListPublished(h.GetDB(c), pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books":     books,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *BookHandler) GetBook(c *gin.Context) {
	book, err := h.bookService.GetBook(h.GetDB(c), c.Param("bookId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) GetTableOfContents(c *gin.Context) {
	items, err := h.accessService.GetTableOfContents(h.GetDB(c), h.OptionalUserID(c), c.Param("bookId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": items})
}

func (h *BookHandler) GetChapter(c *gin.Context) {
	number, err := ParseParamInt(c, "number")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.accessService.GetChapter(h.GetDB(c), h.OptionalUserID(c), c.Param("bookId"), number)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookHandler) ListAllBooks(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	books, err := h.bookService.ListAll(h.GetDB(c), pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "page": page, "page_size": pageSize})
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var req models.CreateBookRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.bookService.CreateBook(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req models.UpdateBookRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.bookService.UpdateBook(h.GetDB(c), c.Param("bookId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.bookService.DeleteBook(h.GetDB(c), c.Param("bookId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}

func (h *BookHandler) CreateChapter(c *gin.Context) {
	var req models.CreateChapterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	chapter, err := h.bookService.CreateChapter(h.GetDB(c), c.Param("bookId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}
