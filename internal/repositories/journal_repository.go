package repositories

import (
	"errors"
	"time"

	"readly_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrJournalAccessNotFound = errors.New("journal access not found")

type JournalRepository interface {
	FindByUser(db *gorm.DB, userID string) (*models.JournalAccess, error)

	// EnsureRow лениво создает запись с фиксированным free_trial_ends_at
	// при первом обращении. Гонка двух первых запросов разруливается
	// через ON CONFLICT DO NOTHING + повторное чтение.
	EnsureRow(db *gorm.DB, access *models.JournalAccess) (*models.JournalAccess, error)

	// ExtendAccess атомарно пишет новый access_until и reward-действие.
	ExtendAccess(db *gorm.DB, userID string, until time.Time, action *models.RewardAction) error
}

type JournalRepositoryImpl struct{}

func NewJournalRepository() JournalRepository {
	return &JournalRepositoryImpl{}
}

func (r *JournalRepositoryImpl) FindByUser(db *gorm.DB, userID string) (*models.JournalAccess, error) {
	var access models.JournalAccess
	if err := db.Where("user_id = ?", userID).First(&access).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJournalAccessNotFound
		}
		return nil, err
	}
	return &access, nil
}

func (r *JournalRepositoryImpl) EnsureRow(db *gorm.DB, access *models.JournalAccess) (*models.JournalAccess, error) {
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(access)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return access, nil
	}
	return r.FindByUser(db, access.UserID)
}

func (r *JournalRepositoryImpl) ExtendAccess(db *gorm.DB, userID string, until time.Time, action *models.RewardAction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.JournalAccess{}).Where("user_id = ?", userID).
			Update("access_until", until).Error; err != nil {
			return err
		}
		return tx.Create(action).Error
	})
}
