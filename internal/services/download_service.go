package services

import (
	"encoding/json"
	"time"

	"readly_backend/internal/adverify"
	"readly_backend/internal/config"
	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DownloadService interface {
	// WatchAd засчитывает один просмотр рекламы в накопительный счетчик
	// скачивания. После достижения порога разблокировка постоянна;
	// лишние просмотры счетчик не меняют.
	WatchAd(db *gorm.DB, userID, bookID string, req *models.AdRewardRequest) (*models.DownloadStatusResponse, error)

	GetStatus(db *gorm.DB, userID, bookID string) (*models.DownloadStatusResponse, error)
}

type DownloadServiceImpl struct {
	bookRepo     repositories.BookRepository
	downloadRepo repositories.DownloadRepository
	verifier     adverify.Verifier
	now          func() time.Time
}

func NewDownloadService(
	bookRepo repositories.BookRepository,
	downloadRepo repositories.DownloadRepository,
	verifier adverify.Verifier,
) DownloadService {
	return &DownloadServiceImpl{
		bookRepo:     bookRepo,
		downloadRepo: downloadRepo,
		verifier:     verifier,
		now:          time.Now,
	}
}

func (s *DownloadServiceImpl) WatchAd(db *gorm.DB, userID, bookID string, req *models.AdRewardRequest) (*models.DownloadStatusResponse, error) {
	if err := s.verifier.Verify(userID, req.SSVToken); err != nil {
		return nil, apperrors.ErrAdVerificationFailed
	}

	book, err := s.bookRepo.FindByID(db, bookID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !book.IsPublished {
		return nil, apperrors.ErrBookNotPublished
	}

	cfg := config.GetConfig()
	meta, _ := json.Marshal(map[string]interface{}{"book_id": bookID})
	action := &models.RewardAction{
		UserID:   userID,
		Action:   models.RewardAdDownload,
		Metadata: datatypes.JSON(meta),
	}

	counter, err := s.downloadRepo.RecordWatch(db, userID, bookID,
		cfg.Entitlements.DownloadAdsRequired, action, s.now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toDownloadResponse(counter), nil
}

func (s *DownloadServiceImpl) GetStatus(db *gorm.DB, userID, bookID string) (*models.DownloadStatusResponse, error) {
	counter, err := s.downloadRepo.FindByUserAndBook(db, userID, bookID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDownloadCounterNotFound) {
			// Счетчик еще не заводился: нулевой прогресс
			cfg := config.GetConfig()
			return &models.DownloadStatusResponse{
				BookID:      bookID,
				AdsWatched:  0,
				AdsRequired: cfg.Entitlements.DownloadAdsRequired,
				IsUnlocked:  false,
			}, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return toDownloadResponse(counter), nil
}

func toDownloadResponse(c *models.DownloadCounter) *models.DownloadStatusResponse {
	return &models.DownloadStatusResponse{
		BookID:      c.BookID,
		AdsWatched:  c.AdsWatched,
		AdsRequired: c.AdsRequired,
		IsUnlocked:  c.IsUnlocked,
		UnlockedAt:  c.UnlockedAt,
	}
}
