package repositories

import (
	"errors"
	"time"

	"readly_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTrialNotFound = errors.New("premium trial not found")

// PlatformStats - агрегаты для админской панели.
type PlatformStats struct {
	TotalTrials       int64
	TotalAdGrants     int64
	ActivePremiumUsers int64
	RewardActions     int64
}

type EntitlementRepository interface {
	FindTrial(db *gorm.DB, userID string) (*models.PremiumTrial, error)

	// CreateTrial атомарно создает trial и выставляет trial_used +
	// premium_until на пользователе. Дубликат вставки упирается в
	// uniqueIndex по user_id и откатывает всю транзакцию.
	CreateTrial(db *gorm.DB, trial *models.PremiumTrial) error

	// ApplyAdGrant атомарно пишет грант, reward-действие и обновляет
	// кэш пользователя. premiumUntil считает сервис (monotonic extend),
	// репозиторий его только фиксирует.
	ApplyAdGrant(db *gorm.DB, grant *models.PremiumAccessGrant, action *models.RewardAction, premiumUntil time.Time) error

	FindGrants(db *gorm.DB, userID string) ([]models.PremiumAccessGrant, error)

	// CountRewardActions считает действия данного типа в полуинтервале
	// [from, to). Границы дня считает сервис в reward-таймзоне.
	CountRewardActions(db *gorm.DB, userID string, action models.RewardActionType, from, to time.Time) (int64, error)

	CreateRewardAction(db *gorm.DB, action *models.RewardAction) error

	// ReplayPremiumUntil выводит эффективный premium_until заново из
	// trial и лога грантов. Возвращает nil, если премиума не было.
	ReplayPremiumUntil(db *gorm.DB, userID string) (*time.Time, error)

	// Admin operations
	GetPlatformStats(db *gorm.DB, now time.Time) (*PlatformStats, error)
}

type EntitlementRepositoryImpl struct{}

func NewEntitlementRepository() EntitlementRepository {
	return &EntitlementRepositoryImpl{}
}

func (r *EntitlementRepositoryImpl) FindTrial(db *gorm.DB, userID string) (*models.PremiumTrial, error) {
	var trial models.PremiumTrial
	if err := db.Where("user_id = ?", userID).First(&trial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrialNotFound
		}
		return nil, err
	}
	return &trial, nil
}

func (r *EntitlementRepositoryImpl) CreateTrial(db *gorm.DB, trial *models.PremiumTrial) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trial).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", trial.UserID).Updates(map[string]interface{}{
			"trial_used":    true,
			"premium_until": trial.EndsAt,
		}).Error
	})
}

func (r *EntitlementRepositoryImpl) ApplyAdGrant(db *gorm.DB, grant *models.PremiumAccessGrant, action *models.RewardAction, premiumUntil time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(grant).Error; err != nil {
			return err
		}
		if err := tx.Create(action).Error; err != nil {
			return err
		}
		// Ad-грант тоже сжигает право на trial.
		return tx.Model(&models.User{}).Where("id = ?", grant.UserID).Updates(map[string]interface{}{
			"trial_used":    true,
			"premium_until": premiumUntil,
		}).Error
	})
}

func (r *EntitlementRepositoryImpl) FindGrants(db *gorm.DB, userID string) ([]models.PremiumAccessGrant, error) {
	var grants []models.PremiumAccessGrant
	err := db.Where("user_id = ?", userID).Order("granted_at ASC").Find(&grants).Error
	return grants, err
}

func (r *EntitlementRepositoryImpl) CountRewardActions(db *gorm.DB, userID string, action models.RewardActionType, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.RewardAction{}).
		Where("user_id = ? AND action = ? AND created_at >= ? AND created_at < ?", userID, action, from, to).
		Count(&count).Error
	return count, err
}

func (r *EntitlementRepositoryImpl) CreateRewardAction(db *gorm.DB, action *models.RewardAction) error {
	return db.Create(action).Error
}

func (r *EntitlementRepositoryImpl) ReplayPremiumUntil(db *gorm.DB, userID string) (*time.Time, error) {
	var max *time.Time

	trial, err := r.FindTrial(db, userID)
	if err != nil && !errors.Is(err, ErrTrialNotFound) {
		return nil, err
	}
	if trial != nil {
		max = &trial.EndsAt
	}

	grants, err := r.FindGrants(db, userID)
	if err != nil {
		return nil, err
	}
	for i := range grants {
		if max == nil || grants[i].ExpiresAt.After(*max) {
			max = &grants[i].ExpiresAt
		}
	}
	return max, nil
}

func (r *EntitlementRepositoryImpl) GetPlatformStats(db *gorm.DB, now time.Time) (*PlatformStats, error) {
	stats := &PlatformStats{}

	if err := db.Model(&models.PremiumTrial{}).Count(&stats.TotalTrials).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.PremiumAccessGrant{}).Count(&stats.TotalAdGrants).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("premium_until > ?", now).Count(&stats.ActivePremiumUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.RewardAction{}).Count(&stats.RewardActions).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
