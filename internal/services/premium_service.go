package services

import (
	"encoding/json"
	"time"

	"readly_backend/internal/adverify"
	"readly_backend/internal/config"
	"readly_backend/internal/entitlement"
	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PremiumService interface {
	// StartTrial активирует разовый пробный период. Второй вызов для
	// того же пользователя - ErrTrialAlreadyUsed, состояние не меняется.
	StartTrial(db *gorm.DB, userID string) (*models.PremiumStatusResponse, error)

	// GrantAdReward продлевает премиум за просмотр рекламы. Дневной
	// лимит проверяется ДО записи; стек грантов аддитивен.
	GrantAdReward(db *gorm.DB, userID string, req *models.AdRewardRequest) (*models.PremiumStatusResponse, error)

	GetStatus(db *gorm.DB, userID string) (*models.PremiumStatusResponse, error)

	// IsPremium - проверка для других сервисов (доступ к главам премиум
	// не дает, но статус нужен журналу и клиентскому UI).
	IsPremium(db *gorm.DB, userID string, now time.Time) (bool, error)
}

type PremiumServiceImpl struct {
	userRepo        repositories.UserRepository
	entitlementRepo repositories.EntitlementRepository
	verifier        adverify.Verifier
	now             func() time.Time
}

func NewPremiumService(
	userRepo repositories.UserRepository,
	entitlementRepo repositories.EntitlementRepository,
	verifier adverify.Verifier,
) PremiumService {
	return &PremiumServiceImpl{
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
		verifier:        verifier,
		now:             time.Now,
	}
}

func (s *PremiumServiceImpl) StartTrial(db *gorm.DB, userID string) (*models.PremiumStatusResponse, error) {
	cfg := config.GetConfig()
	now := s.now()

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Флаг и запись проверяются оба: флаг - быстрый путь, запись -
	// страховка от рассинхронизации кэша.
	if user.TrialUsed {
		return nil, apperrors.ErrTrialAlreadyUsed
	}
	if _, err := s.entitlementRepo.FindTrial(db, userID); err == nil {
		return nil, apperrors.ErrTrialAlreadyUsed
	} else if !apperrors.Is(err, repositories.ErrTrialNotFound) {
		return nil, apperrors.InternalError(err)
	}

	trial := &models.PremiumTrial{
		UserID:   userID,
		StartsAt: now,
		EndsAt:   entitlement.ExtendDays(now, cfg.Entitlements.TrialDurationDays),
	}
	if err := s.entitlementRepo.CreateTrial(db, trial); err != nil {
		// Гонка двух startTrial упирается в уникальный индекс
		return nil, apperrors.ErrTrialAlreadyUsed.WithError(err)
	}

	return s.GetStatus(db, userID)
}

func (s *PremiumServiceImpl) GrantAdReward(db *gorm.DB, userID string, req *models.AdRewardRequest) (*models.PremiumStatusResponse, error) {
	cfg := config.GetConfig()
	now := s.now()

	if err := s.verifier.Verify(userID, req.SSVToken); err != nil {
		return nil, apperrors.ErrAdVerificationFailed
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Дневной лимит в референсной таймзоне сервера
	dayStart, dayEnd := entitlement.DayBounds(now, cfg.RewardLocation())
	watched, err := s.entitlementRepo.CountRewardActions(db, userID, models.RewardAdPremium, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if watched >= int64(cfg.Entitlements.MaxAdsPerDayPremium) {
		return nil, apperrors.ErrDailyCapReached
	}

	days := cfg.Entitlements.AdGrantDurationDays
	premiumUntil := entitlement.ExtendDays(now, days, user.PremiumUntil)

	grant := &models.PremiumAccessGrant{
		UserID:       userID,
		GrantedAt:    now,
		ExpiresAt:    premiumUntil,
		DurationDays: days,
		Source:       "rewarded_ad",
		Metadata:     marshalMetadata(req.Metadata),
	}
	action := &models.RewardAction{
		UserID:   userID,
		Action:   models.RewardAdPremium,
		Metadata: marshalMetadata(req.Metadata),
	}

	if err := s.entitlementRepo.ApplyAdGrant(db, grant, action, premiumUntil); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetStatus(db, userID)
}

func (s *PremiumServiceImpl) GetStatus(db *gorm.DB, userID string) (*models.PremiumStatusResponse, error) {
	cfg := config.GetConfig()
	now := s.now()

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	dayStart, dayEnd := entitlement.DayBounds(now, cfg.RewardLocation())
	watched, err := s.entitlementRepo.CountRewardActions(db, userID, models.RewardAdPremium, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	left := cfg.Entitlements.MaxAdsPerDayPremium - int(watched)
	if left < 0 {
		left = 0
	}

	return &models.PremiumStatusResponse{
		IsPremium:       entitlement.Active(now, user.PremiumUntil),
		PremiumUntil:    user.PremiumUntil,
		DaysRemaining:   entitlement.DaysRemaining(now, user.PremiumUntil),
		TrialUsed:       user.TrialUsed,
		AdsWatchedToday: int(watched),
		AdsLeftToday:    left,
		MaxAdsPerDay:    cfg.Entitlements.MaxAdsPerDayPremium,
		AdGrantDays:     cfg.Entitlements.AdGrantDurationDays,
		TrialDays:       cfg.Entitlements.TrialDurationDays,
	}, nil
}

func (s *PremiumServiceImpl) IsPremium(db *gorm.DB, userID string, now time.Time) (bool, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return false, err
	}
	return entitlement.Active(now, user.PremiumUntil), nil
}

func marshalMetadata(m map[string]interface{}) datatypes.JSON {
	if len(m) == 0 {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
