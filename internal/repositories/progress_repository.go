package repositories

import (
	"readly_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	// UpsertCompleted помечает главу прочитанной. Completed назад не
	// откатывается, поэтому повторный вызов - no-op.
	UpsertCompleted(db *gorm.DB, userID, bookID string, chapterNumber int) error

	// UpsertReflection перезаписывает заметку к главе.
	UpsertReflection(db *gorm.DB, userID, bookID string, chapterNumber int, reflection string) error

	FindByUserAndBook(db *gorm.DB, userID, bookID string) ([]models.ProgressRecord, error)
	FindByUser(db *gorm.DB, userID string) ([]models.ProgressRecord, error)
}

type ProgressRepositoryImpl struct{}

func NewProgressRepository() ProgressRepository {
	return &ProgressRepositoryImpl{}
}

func (r *ProgressRepositoryImpl) UpsertCompleted(db *gorm.DB, userID, bookID string, chapterNumber int) error {
	record := models.ProgressRecord{
		UserID:        userID,
		BookID:        bookID,
		ChapterNumber: chapterNumber,
		Completed:     true,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}, {Name: "chapter_number"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completed": true}),
	}).Create(&record).Error
}

func (r *ProgressRepositoryImpl) UpsertReflection(db *gorm.DB, userID, bookID string, chapterNumber int, reflection string) error {
	record := models.ProgressRecord{
		UserID:        userID,
		BookID:        bookID,
		ChapterNumber: chapterNumber,
		Reflection:    reflection,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}, {Name: "chapter_number"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"reflection": reflection}),
	}).Create(&record).Error
}

func (r *ProgressRepositoryImpl) FindByUserAndBook(db *gorm.DB, userID, bookID string) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	err := db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("chapter_number ASC").
		Find(&records).Error
	return records, err
}

func (r *ProgressRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	err := db.Where("user_id = ?", userID).
		Order("book_id ASC, chapter_number ASC").
		Find(&records).Error
	return records, err
}
