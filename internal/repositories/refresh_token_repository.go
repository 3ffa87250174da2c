package repositories

import (
	"errors"
	"time"

	"readly_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error
	Find(db *gorm.DB, token string) (*models.RefreshToken, error)
	Delete(db *gorm.DB, token string) error
	DeleteByUser(db *gorm.DB, userID string) error
	DeleteExpired(db *gorm.DB) error
}

type RefreshTokenRepositoryImpl struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{}
}

func (r *RefreshTokenRepositoryImpl) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *RefreshTokenRepositoryImpl) Find(db *gorm.DB, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := db.Where("token = ?", token).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *RefreshTokenRepositoryImpl) Delete(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *RefreshTokenRepositoryImpl) DeleteByUser(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

func (r *RefreshTokenRepositoryImpl) DeleteExpired(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error
}
