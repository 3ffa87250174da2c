package models

import (
	"github.com/lib/pq"
)

type Book struct {
	BaseModel
	Title       string `gorm:"not null;index"`
	Author      string `gorm:"not null"`
	Description string `gorm:"type:text"`
	CoverURL    string
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags" swaggerignore:"true"`
	// Price - непрозрачный идентификатор суммы для платежного
	// коллаборатора; движок им не оперирует.
	Price       float64
	Currency    string `gorm:"default:'USD'"`
	IsPublished bool   `gorm:"default:false"`

	// Relations
	Chapters []Chapter `gorm:"foreignKey:BookID"`
}

type Chapter struct {
	BaseModel
	BookID string `gorm:"not null;index;uniqueIndex:idx_chapters_book_number"`
	// Number - порядковый номер главы начиная с 1. Порог бесплатных
	// глав сравнивается именно с ним.
	Number  int    `gorm:"not null;uniqueIndex:idx_chapters_book_number"`
	Title   string `gorm:"not null"`
	Content string `gorm:"type:text"`
}
