package services

import (
	"readly_backend/internal/config"
	"readly_backend/internal/entitlement"
	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AccessService разрешает уровень доступа к главам. Тир вычисляется
// заново при каждом запросе чистой функцией, никакие события покупки
// или разблокировки его не кэшируют.
type AccessService interface {
	// GetChapter возвращает главу с контентом, обрезанным по тиру.
	// userID == "" - анонимный запрос: бесплатный порог действует,
	// персональные гранты - нет.
	GetChapter(db *gorm.DB, userID, bookID string, chapterNumber int) (*models.ChapterAccessResponse, error)

	// GetTableOfContents - оглавление с тиром каждой главы, без контента.
	GetTableOfContents(db *gorm.DB, userID, bookID string) ([]models.ChapterListItem, error)
}

type AccessServiceImpl struct {
	bookRepo     repositories.BookRepository
	purchaseRepo repositories.PurchaseRepository
	unlockRepo   repositories.ChapterUnlockRepository
}

func NewAccessService(
	bookRepo repositories.BookRepository,
	purchaseRepo repositories.PurchaseRepository,
	unlockRepo repositories.ChapterUnlockRepository,
) AccessService {
	return &AccessServiceImpl{
		bookRepo:     bookRepo,
		purchaseRepo: purchaseRepo,
		unlockRepo:   unlockRepo,
	}
}

func (s *AccessServiceImpl) GetChapter(db *gorm.DB, userID, bookID string, chapterNumber int) (*models.ChapterAccessResponse, error) {
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

	chapter, err := s.bookRepo.FindChapter(db, bookID, chapterNumber)
	if err != nil {
		if apperrors.Is(err, repositories.ErrChapterNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	isPurchased, unlocked, err := s.userGrants(db, userID, bookID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	access := entitlement.ResolveTier(
		chapterNumber,
		cfg.Entitlements.FreeChapterThreshold,
		isPurchased,
		unlocked,
		cfg.Entitlements.PartialPreviewFraction,
	)

	return &models.ChapterAccessResponse{
		BookID:         bookID,
		Number:         chapter.Number,
		Title:          chapter.Title,
		Tier:           string(access.Tier),
		RevealFraction: access.RevealFraction,
		Content:        entitlement.PreviewCut(chapter.Content, access.RevealFraction),
	}, nil
}

func (s *AccessServiceImpl) GetTableOfContents(db *gorm.DB, userID, bookID string) ([]models.ChapterListItem, error) {
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

	chapters, err := s.bookRepo.ListChapters(db, bookID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	isPurchased, unlocked, err := s.userGrants(db, userID, bookID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	items := make([]models.ChapterListItem, 0, len(chapters))
	for i := range chapters {
		access := entitlement.ResolveTier(
			chapters[i].Number,
			cfg.Entitlements.FreeChapterThreshold,
			isPurchased,
			unlocked,
			cfg.Entitlements.PartialPreviewFraction,
		)
		items = append(items, models.ChapterListItem{
			Number: chapters[i].Number,
			Title:  chapters[i].Title,
			Tier:   string(access.Tier),
		})
	}
	return items, nil
}

// userGrants собирает персональные гранты пользователя по книге.
// Для анонима оба пусты: refunded-покупки сюда не попадают по условию
// на статус в HasActivePurchase.
func (s *AccessServiceImpl) userGrants(db *gorm.DB, userID, bookID string) (bool, map[int]bool, error) {
	if userID == "" {
		return false, nil, nil
	}

	isPurchased, err := s.purchaseRepo.HasActivePurchase(db, userID, bookID)
	if err != nil {
		return false, nil, err
	}

	numbers, err := s.unlockRepo.FindNumbersByUserAndBook(db, userID, bookID)
	if err != nil {
		return false, nil, err
	}
	unlocked := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		unlocked[n] = true
	}
	return isPurchased, unlocked, nil
}
