package services

import (
	"time"

	"readly_backend/internal/adverify"
	"readly_backend/internal/config"
	"readly_backend/internal/entitlement"
	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JournalService interface {
	// GetStatus лениво создает окно при первом обращении: бесплатный
	// trial стартует с первого касания фичи, не с регистрации.
	GetStatus(db *gorm.DB, userID string) (*models.JournalStatusResponse, error)

	// ExtendByAd продлевает доступ за просмотр рекламы монотонно:
	// max(now, free_trial_ends_at, access_until) + extension.
	ExtendByAd(db *gorm.DB, userID string, req *models.AdRewardRequest) (*models.JournalStatusResponse, error)
}

type JournalServiceImpl struct {
	journalRepo repositories.JournalRepository
	verifier    adverify.Verifier
	now         func() time.Time
}

func NewJournalService(journalRepo repositories.JournalRepository, verifier adverify.Verifier) JournalService {
	return &JournalServiceImpl{
		journalRepo: journalRepo,
		verifier:    verifier,
		now:         time.Now,
	}
}

func (s *JournalServiceImpl) GetStatus(db *gorm.DB, userID string) (*models.JournalStatusResponse, error) {
	access, err := s.ensure(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(access), nil
}

func (s *JournalServiceImpl) ExtendByAd(db *gorm.DB, userID string, req *models.AdRewardRequest) (*models.JournalStatusResponse, error) {
	if err := s.verifier.Verify(userID, req.SSVToken); err != nil {
		return nil, apperrors.ErrAdVerificationFailed
	}

	access, err := s.ensure(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	now := s.now()
	until := entitlement.ExtendDays(now, cfg.Entitlements.JournalExtensionDays,
		&access.FreeTrialEndsAt, access.AccessUntil)

	action := &models.RewardAction{
		UserID: userID,
		Action: models.RewardAdJournal,
	}
	if err := s.journalRepo.ExtendAccess(db, userID, until, action); err != nil {
		return nil, apperrors.InternalError(err)
	}

	access.AccessUntil = &until
	return s.toResponse(access), nil
}

func (s *JournalServiceImpl) ensure(db *gorm.DB, userID string) (*models.JournalAccess, error) {
	cfg := config.GetConfig()
	now := s.now()

	seed := &models.JournalAccess{
		UserID:          userID,
		FreeTrialEndsAt: entitlement.ExtendDays(now, cfg.Entitlements.JournalFreeTrialDays),
	}
	return s.journalRepo.EnsureRow(db, seed)
}

func (s *JournalServiceImpl) toResponse(access *models.JournalAccess) *models.JournalStatusResponse {
	cfg := config.GetConfig()
	now := s.now()

	// Дни считаем по позднему из двух окон
	best := &access.FreeTrialEndsAt
	if access.AccessUntil != nil && access.AccessUntil.After(*best) {
		best = access.AccessUntil
	}

	return &models.JournalStatusResponse{
		HasAccess:       entitlement.Active(now, &access.FreeTrialEndsAt, access.AccessUntil),
		FreeTrialEndsAt: access.FreeTrialEndsAt,
		AccessUntil:     access.AccessUntil,
		DaysRemaining:   entitlement.DaysRemaining(now, best),
		ExtensionDays:   cfg.Entitlements.JournalExtensionDays,
	}
}
