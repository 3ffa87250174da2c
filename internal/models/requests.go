package models

// Request DTO для входящих запросов (binding + валидация через
// internal/validator).

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required" validate:"required"`
	NewPassword     string `json:"new_password" binding:"required" validate:"required,min=8"`
}

type CreateBookRequest struct {
	Title       string   `json:"title" binding:"required" validate:"required,min=1"`
	Author      string   `json:"author" binding:"required" validate:"required,min=1"`
	Description string   `json:"description"`
	CoverURL    string   `json:"cover_url"`
	Tags        []string `json:"tags"`
	Price       float64  `json:"price" validate:"gte=0"`
	Currency    string   `json:"currency"`
	IsPublished bool     `json:"is_published"`
}

type UpdateBookRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Description *string  `json:"description"`
	CoverURL    *string  `json:"cover_url"`
	Tags        []string `json:"tags"`
	Price       *float64 `json:"price"`
	Currency    *string  `json:"currency"`
	IsPublished *bool    `json:"is_published"`
}

type CreateChapterRequest struct {
	Number  int    `json:"number" binding:"required" validate:"required,min=1"`
	Title   string `json:"title" binding:"required" validate:"required,min=1"`
	Content string `json:"content" binding:"required" validate:"required"`
}

// AdRewardRequest - колбэк "реклама досмотрена". SSVToken опционален:
// в режиме ad_verify.mode=jwt он обязателен и проверяется.
type AdRewardRequest struct {
	SSVToken string                 `json:"ssv_token"`
	Metadata map[string]interface{} `json:"metadata"`
}

type UnlockChapterRequest struct {
	ChapterNumber int    `json:"chapter_number" binding:"required" validate:"required,min=1"`
	SSVToken      string `json:"ssv_token"`
}

// ConfirmPurchaseRequest - единственная точка входа платежного
// коллаборатора: платеж уже собран, движок только записывает владение.
type ConfirmPurchaseRequest struct {
	BookID    string  `json:"book_id" binding:"required" validate:"required,uuid"`
	Provider  string  `json:"provider" binding:"required" validate:"required"`
	ReceiptID string  `json:"receipt_id" binding:"required" validate:"required"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

type SaveReflectionRequest struct {
	Reflection string `json:"reflection" binding:"required" validate:"required"`
}

type MarkCompleteRequest struct {
	Completed bool `json:"completed"`
}
