package services

import (
	"time"

	"readly_backend/internal/email"
	"readly_backend/internal/logger"
	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// PurchaseService записывает владение книгами. Сам платеж собирает
// внешний платежный коллаборатор; сюда приходит только подтверждение.
type PurchaseService interface {
	// ConfirmPurchase идемпотентна: повторное подтверждение той же пары
	// (user, book) возвращает существующую покупку без ошибки.
	ConfirmPurchase(db *gorm.DB, userID string, req *models.ConfirmPurchaseRequest) (*models.Purchase, error)

	ListPurchases(db *gorm.DB, userID string) ([]models.Purchase, error)

	// Refund помечает покупку возвращенной (admin). Строка остается,
	// FULL-доступ по ней пропадает при следующем разрешении тира.
	Refund(db *gorm.DB, purchaseID string) error
}

type PurchaseServiceImpl struct {
	purchaseRepo  repositories.PurchaseRepository
	bookRepo      repositories.BookRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	now           func() time.Time
}

func NewPurchaseService(
	purchaseRepo repositories.PurchaseRepository,
	bookRepo repositories.BookRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) PurchaseService {
	return &PurchaseServiceImpl{
		purchaseRepo:  purchaseRepo,
		bookRepo:      bookRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
		now:           time.Now,
	}
}

func (s *PurchaseServiceImpl) ConfirmPurchase(db *gorm.DB, userID string, req *models.ConfirmPurchaseRequest) (*models.Purchase, error) {
	book, err := s.bookRepo.FindByID(db, req.BookID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !book.IsPublished {
		return nil, apperrors.ErrBookNotPublished
	}

	purchase := &models.Purchase{
		UserID:    userID,
		BookID:    req.BookID,
		Status:    models.PurchaseStatusActive,
		Provider:  req.Provider,
		ReceiptID: req.ReceiptID,
		Amount:    req.Amount,
		Currency:  req.Currency,
	}

	saved, inserted, err := s.purchaseRepo.CreateIdempotent(db, purchase)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if inserted {
		go s.sendReceipt(db, userID, book, saved)
	}
	return saved, nil
}

func (s *PurchaseServiceImpl) ListPurchases(db *gorm.DB, userID string) ([]models.Purchase, error) {
	purchases, err := s.purchaseRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return purchases, nil
}

func (s *PurchaseServiceImpl) Refund(db *gorm.DB, purchaseID string) error {
	purchase, err := s.purchaseRepo.FindByID(db, purchaseID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPurchaseNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if purchase.Status == models.PurchaseStatusRefunded {
		return apperrors.ErrPurchaseRefunded
	}

	if err := s.purchaseRepo.MarkRefunded(db, purchaseID, s.now()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PurchaseServiceImpl) sendReceipt(db *gorm.DB, userID string, book *models.Book, purchase *models.Purchase) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		logger.WithError(err).Warn("Failed to load user for purchase receipt")
		return
	}
	if err := s.emailProvider.SendPurchaseReceipt(user.Email, book.Title, purchase.Amount, purchase.Currency); err != nil {
		logger.WithError(err).Warn("Failed to send purchase receipt")
	}
}
