package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	BookHandler        *BookHandler
	PremiumHandler     *PremiumHandler
	EntitlementHandler *EntitlementHandler
	ProgressHandler    *ProgressHandler
	PurchaseHandler    *PurchaseHandler
}
