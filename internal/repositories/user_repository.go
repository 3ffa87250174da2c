package repositories

import (
	"errors"
	"time"

	"readly_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByVerificationToken(db *gorm.DB, token string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error
	VerifyUser(db *gorm.DB, userID string) error

	// MarkTrialUsed выставляет trial_used = true. Обратного пути нет:
	// никакой код не снимает этот флаг.
	MarkTrialUsed(db *gorm.DB, userID string) error

	// UpdatePremiumUntil обновляет кэш premium_until на пользователе.
	// Источник истины - лог грантов, кэш всегда выводим из него.
	UpdatePremiumUntil(db *gorm.DB, userID string, until time.Time) error

	// Admin operations
	FindAll(db *gorm.DB, limit, offset int) ([]models.User, error)
	CountAll(db *gorm.DB) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	if err := db.Where("verification_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Update("status", status).Error
}

func (r *UserRepositoryImpl) VerifyUser(db *gorm.DB, userID string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":        true,
		"status":             models.UserStatusActive,
		"verification_token": "",
	}).Error
}

func (r *UserRepositoryImpl) MarkTrialUsed(db *gorm.DB, userID string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Update("trial_used", true).Error
}

func (r *UserRepositoryImpl) UpdatePremiumUntil(db *gorm.DB, userID string, until time.Time) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Update("premium_until", until).Error
}

func (r *UserRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}
