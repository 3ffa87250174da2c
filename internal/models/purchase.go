package models

import "time"

// Purchase - постоянное владение книгой целиком. Уникальна на пару
// (user, book); создается один раз, не мутируется и не удаляется.
// Возврат денег выставляет Status = refunded, строка остается.
type Purchase struct {
	BaseModel
	UserID     string         `gorm:"not null;index;uniqueIndex:idx_purchases_user_book"`
	BookID     string         `gorm:"not null;index;uniqueIndex:idx_purchases_user_book"`
	Status     PurchaseStatus `gorm:"type:varchar(20);default:'active'"`
	Provider   string         `gorm:"type:varchar(50)"`
	ReceiptID  string
	Amount     float64
	Currency   string
	RefundedAt *time.Time

	// Relations
	Book Book `gorm:"foreignKey:BookID"`
}
