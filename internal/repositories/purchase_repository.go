package repositories

import (
	"errors"
	"time"

	"readly_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

type PurchaseRepository interface {
	// CreateIdempotent вставляет покупку; при существующей паре
	// (user, book) возвращает существующую строку и inserted = false.
	// Дубликат подтверждения платежа - не ошибка.
	CreateIdempotent(db *gorm.DB, purchase *models.Purchase) (*models.Purchase, bool, error)
	FindByID(db *gorm.DB, id string) (*models.Purchase, error)
	FindByUserAndBook(db *gorm.DB, userID, bookID string) (*models.Purchase, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Purchase, error)
	// HasActivePurchase - refunded-покупка владения не дает.
	HasActivePurchase(db *gorm.DB, userID, bookID string) (bool, error)
	// MarkRefunded выставляет статус; строка никогда не удаляется.
	MarkRefunded(db *gorm.DB, id string, at time.Time) error
	CountByStatus(db *gorm.DB, status models.PurchaseStatus) (int64, error)
}

type PurchaseRepositoryImpl struct{}

func NewPurchaseRepository() PurchaseRepository {
	return &PurchaseRepositoryImpl{}
}

func (r *PurchaseRepositoryImpl) CreateIdempotent(db *gorm.DB, purchase *models.Purchase) (*models.Purchase, bool, error) {
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(purchase)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return purchase, true, nil
	}

	existing, err := r.FindByUserAndBook(db, purchase.UserID, purchase.BookID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *PurchaseRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := db.Where("id = ?", id).First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepositoryImpl) FindByUserAndBook(db *gorm.DB, userID, bookID string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := db.Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *PurchaseRepositoryImpl) HasActivePurchase(db *gorm.DB, userID, bookID string) (bool, error) {
	var count int64
	err := db.Model(&models.Purchase{}).
		Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, models.PurchaseStatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *PurchaseRepositoryImpl) MarkRefunded(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.Purchase{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      models.PurchaseStatusRefunded,
		"refunded_at": at,
	}).Error
}

func (r *PurchaseRepositoryImpl) CountByStatus(db *gorm.DB, status models.PurchaseStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Purchase{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
