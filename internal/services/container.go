package services

import (
	"readly_backend/internal/adverify"
	"readly_backend/internal/email"
	"readly_backend/internal/repositories"
)

// ServiceContainer - реестр всех сервисов приложения.
type ServiceContainer struct {
	Auth          AuthService
	User          UserService
	Book          BookService
	Access        AccessService
	Premium       PremiumService
	ChapterUnlock ChapterUnlockService
	Journal       JournalService
	Download      DownloadService
	Progress      ProgressService
	Purchase      PurchaseService
}

// NewServiceContainer собирает сервисы поверх репозиториев.
func NewServiceContainer(emailProvider email.Provider, verifier adverify.Verifier) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	bookRepo := repositories.NewBookRepository()
	purchaseRepo := repositories.NewPurchaseRepository()
	entitlementRepo := repositories.NewEntitlementRepository()
	unlockRepo := repositories.NewChapterUnlockRepository()
	journalRepo := repositories.NewJournalRepository()
	downloadRepo := repositories.NewDownloadRepository()
	progressRepo := repositories.NewProgressRepository()

	return &ServiceContainer{
		Auth:          NewAuthService(userRepo, refreshTokenRepo, emailProvider),
		User:          NewUserService(userRepo, entitlementRepo),
		Book:          NewBookService(bookRepo),
		Access:        NewAccessService(bookRepo, purchaseRepo, unlockRepo),
		Premium:       NewPremiumService(userRepo, entitlementRepo, verifier),
		ChapterUnlock: NewChapterUnlockService(bookRepo, unlockRepo, verifier),
		Journal:       NewJournalService(journalRepo, verifier),
		Download:      NewDownloadService(bookRepo, downloadRepo, verifier),
		Progress:      NewProgressService(progressRepo),
		Purchase:      NewPurchaseService(purchaseRepo, bookRepo, userRepo, emailProvider),
	}
}
