package repositories

import (
	"errors"
	"time"

	"readly_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDownloadCounterNotFound = errors.New("download counter not found")

type DownloadRepository interface {
	FindByUserAndBook(db *gorm.DB, userID, bookID string) (*models.DownloadCounter, error)

	// RecordWatch засчитывает один просмотр рекламы под FOR UPDATE.
	// Строка лениво создается с зафиксированным ads_required; после
	// is_unlocked = true дальнейшие просмотры счетчик не меняют, но
	// возвращают успешное разблокированное состояние.
	RecordWatch(db *gorm.DB, userID, bookID string, adsRequired int, action *models.RewardAction, now time.Time) (*models.DownloadCounter, error)
}

type DownloadRepositoryImpl struct{}

func NewDownloadRepository() DownloadRepository {
	return &DownloadRepositoryImpl{}
}

func (r *DownloadRepositoryImpl) FindByUserAndBook(db *gorm.DB, userID, bookID string) (*models.DownloadCounter, error) {
	var counter models.DownloadCounter
	err := db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDownloadCounterNotFound
		}
		return nil, err
	}
	return &counter, nil
}

func (r *DownloadRepositoryImpl) RecordWatch(db *gorm.DB, userID, bookID string, adsRequired int, action *models.RewardAction, now time.Time) (*models.DownloadCounter, error) {
	var counter models.DownloadCounter

	err := db.Transaction(func(tx *gorm.DB) error {
		seed := models.DownloadCounter{
			UserID:      userID,
			BookID:      bookID,
			AdsRequired: adsRequired,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND book_id = ?", userID, bookID).
			First(&counter).Error; err != nil {
			return err
		}

		if counter.IsUnlocked {
			return nil
		}

		counter.AdsWatched++
		if counter.AdsWatched >= counter.AdsRequired {
			counter.IsUnlocked = true
			counter.UnlockedAt = &now
		}
		if err := tx.Save(&counter).Error; err != nil {
			return err
		}
		return tx.Create(action).Error
	})
	if err != nil {
		return nil, err
	}
	return &counter, nil
}
