package services

import (
	"time"

	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetByID(db *gorm.DB, userID string) (*models.User, error)

	// Admin operations
	ListUsers(db *gorm.DB, limit, offset int) ([]models.User, int64, error)
	SuspendUser(db *gorm.DB, userID string) error
	ActivateUser(db *gorm.DB, userID string) error
	GetPlatformStats(db *gorm.DB) (*repositories.PlatformStats, error)
}

type UserServiceImpl struct {
	userRepo        repositories.UserRepository
	entitlementRepo repositories.EntitlementRepository
}

func NewUserService(userRepo repositories.UserRepository, entitlementRepo repositories.EntitlementRepository) UserService {
	return &UserServiceImpl{
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
	}
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) ListUsers(db *gorm.DB, limit, offset int) ([]models.User, int64, error) {
	users, err := s.userRepo.FindAll(db, limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return users, total, nil
}

func (s *UserServiceImpl) SuspendUser(db *gorm.DB, userID string) error {
	if err := s.userRepo.UpdateStatus(db, userID, models.UserStatusSuspended); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) ActivateUser(db *gorm.DB, userID string) error {
	if err := s.userRepo.UpdateStatus(db, userID, models.UserStatusActive); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) GetPlatformStats(db *gorm.DB) (*repositories.PlatformStats, error) {
	stats, err := s.entitlementRepo.GetPlatformStats(db, time.Now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}
