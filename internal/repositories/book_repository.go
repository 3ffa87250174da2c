package repositories

import (
	"errors"

	"readly_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrChapterNotFound = errors.New("chapter not found")
)

type BookRepository interface {
	Create(db *gorm.DB, book *models.Book) error
	Update(db *gorm.DB, book *models.Book) error
	Delete(db *gorm.DB, id string) error
	FindByID(db *gorm.DB, id string) (*models.Book, error)
	FindPublished(db *gorm.DB, limit, offset int) ([]models.Book, error)
	CountPublished(db *gorm.DB) (int64, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.Book, error)

	// Chapter operations
	CreateChapter(db *gorm.DB, chapter *models.Chapter) error
	FindChapter(db *gorm.DB, bookID string, number int) (*models.Chapter, error)
	// ListChapters возвращает оглавление без контента глав.
	ListChapters(db *gorm.DB, bookID string) ([]models.Chapter, error)
	CountChapters(db *gorm.DB, bookID string) (int64, error)
}

type BookRepositoryImpl struct{}

func NewBookRepository() BookRepository {
	return &BookRepositoryImpl{}
}

func (r *BookRepositoryImpl) Create(db *gorm.DB, book *models.Book) error {
	return db.Create(book).Error
}

func (r *BookRepositoryImpl) Update(db *gorm.DB, book *models.Book) error {
	return db.Save(book).Error
}

func (r *BookRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Book{}).Error
	})
}

func (r *BookRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Book, error) {
	var book models.Book
	if err := db.Where("id = ?", id).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *BookRepositoryImpl) FindPublished(db *gorm.DB, limit, offset int) ([]models.Book, error) {
	var books []models.Book
	err := db.Where("is_published = ?", true).
		Order("title ASC").
		Limit(limit).Offset(offset).
		Find(&books).Error
	return books, err
}

func (r *BookRepositoryImpl) CountPublished(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Book{}).Where("is_published = ?", true).Count(&count).Error
	return count, err
}

func (r *BookRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Book, error) {
	var books []models.Book
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&books).Error
	return books, err
}

func (r *BookRepositoryImpl) CreateChapter(db *gorm.DB, chapter *models.Chapter) error {
	return db.Create(chapter).Error
}

func (r *BookRepositoryImpl) FindChapter(db *gorm.DB, bookID string, number int) (*models.Chapter, error) {
	var chapter models.Chapter
	err := db.Where("book_id = ? AND number = ?", bookID, number).First(&chapter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

func (r *BookRepositoryImpl) ListChapters(db *gorm.DB, bookID string) ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := db.Select("id", "created_at", "updated_at", "book_id", "number", "title").
		Where("book_id = ?", bookID).
		Order("number ASC").
		Find(&chapters).Error
	return chapters, err
}

func (r *BookRepositoryImpl) CountChapters(db *gorm.DB, bookID string) (int64, error) {
	var count int64
	err := db.Model(&models.Chapter{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}
