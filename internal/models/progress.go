package models

// ProgressRecord - единица сверки между клиентским кэшем и сервером.
// Уникальна на тройку (user, book, chapter).
type ProgressRecord struct {
	BaseModel
	UserID        string `gorm:"not null;index;uniqueIndex:idx_progress_user_book_num"`
	BookID        string `gorm:"not null;index;uniqueIndex:idx_progress_user_book_num"`
	ChapterNumber int    `gorm:"not null;uniqueIndex:idx_progress_user_book_num"`
	Completed     bool   `gorm:"not null;default:false"`
	Reflection    string `gorm:"type:text"`
}
