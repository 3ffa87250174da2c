package repositories

import (
	"readly_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChapterUnlockRepository interface {
	// InsertIdempotent вставляет разблокировку через ON CONFLICT DO
	// NOTHING. Возвращает inserted = false, если пара уже была; reward-
	// действие пишется только при реальной вставке, чтобы повторный
	// запрос не раздувал аудит.
	InsertIdempotent(db *gorm.DB, unlock *models.ChapterUnlock, action *models.RewardAction) (bool, error)

	Exists(db *gorm.DB, userID, bookID string, chapterNumber int) (bool, error)
	FindNumbersByUserAndBook(db *gorm.DB, userID, bookID string) ([]int, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
}

type ChapterUnlockRepositoryImpl struct{}

func NewChapterUnlockRepository() ChapterUnlockRepository {
	return &ChapterUnlockRepositoryImpl{}
}

func (r *ChapterUnlockRepositoryImpl) InsertIdempotent(db *gorm.DB, unlock *models.ChapterUnlock, action *models.RewardAction) (bool, error) {
	inserted := false
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(unlock)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		inserted = true
		return tx.Create(action).Error
	})
	return inserted, err
}

func (r *ChapterUnlockRepositoryImpl) Exists(db *gorm.DB, userID, bookID string, chapterNumber int) (bool, error) {
	var count int64
	err := db.Model(&models.ChapterUnlock{}).
		Where("user_id = ? AND book_id = ? AND chapter_number = ?", userID, bookID, chapterNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *ChapterUnlockRepositoryImpl) FindNumbersByUserAndBook(db *gorm.DB, userID, bookID string) ([]int, error) {
	var numbers []int
	err := db.Model(&models.ChapterUnlock{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("chapter_number ASC").
		Pluck("chapter_number", &numbers).Error
	return numbers, err
}

func (r *ChapterUnlockRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.ChapterUnlock{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
