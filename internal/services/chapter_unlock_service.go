package services

import (
	"encoding/json"

	"readly_backend/internal/adverify"
	"readly_backend/internal/config"
	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChapterUnlockService interface {
	// UnlockChapter - постоянная разблокировка главы за просмотр
	// рекламы. Повторный вызов для той же главы - успех с
	// AlreadyGranted = true, не ошибка.
	UnlockChapter(db *gorm.DB, userID, bookID string, req *models.UnlockChapterRequest) (*models.UnlockChapterResponse, error)

	ListUnlocks(db *gorm.DB, userID, bookID string) ([]int, error)
}

type ChapterUnlockServiceImpl struct {
	bookRepo   repositories.BookRepository
	unlockRepo repositories.ChapterUnlockRepository
	verifier   adverify.Verifier
}

func NewChapterUnlockService(
	bookRepo repositories.BookRepository,
	unlockRepo repositories.ChapterUnlockRepository,
	verifier adverify.Verifier,
) ChapterUnlockService {
	return &ChapterUnlockServiceImpl{
		bookRepo:   bookRepo,
		unlockRepo: unlockRepo,
		verifier:   verifier,
	}
}

func (s *ChapterUnlockServiceImpl) UnlockChapter(db *gorm.DB, userID, bookID string, req *models.UnlockChapterRequest) (*models.UnlockChapterResponse, error) {
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

	if _, err := s.bookRepo.FindChapter(db, bookID, req.ChapterNumber); err != nil {
		if apperrors.Is(err, repositories.ErrChapterNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Глава в пределах бесплатного порога и так открыта: успех без
	// записи, просмотр не сжигается и в reward-лог не попадает.
	if req.ChapterNumber <= config.GetConfig().Entitlements.FreeChapterThreshold {
		return &models.UnlockChapterResponse{
			BookID:         bookID,
			ChapterNumber:  req.ChapterNumber,
			AlreadyGranted: true,
		}, nil
	}

	unlock := &models.ChapterUnlock{
		UserID:        userID,
		BookID:        bookID,
		ChapterNumber: req.ChapterNumber,
	}
	meta, _ := json.Marshal(map[string]interface{}{
		"book_id": bookID,
		"chapter": req.ChapterNumber,
	})
	action := &models.RewardAction{
		UserID:   userID,
		Action:   models.RewardAdChapter,
		Metadata: datatypes.JSON(meta),
	}

	inserted, err := s.unlockRepo.InsertIdempotent(db, unlock, action)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &models.UnlockChapterResponse{
		BookID:         bookID,
		ChapterNumber:  req.ChapterNumber,
		AlreadyGranted: !inserted,
	}, nil
}

func (s *ChapterUnlockServiceImpl) ListUnlocks(db *gorm.DB, userID, bookID string) ([]int, error) {
	numbers, err := s.unlockRepo.FindNumbersByUserAndBook(db, userID, bookID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return numbers, nil
}
