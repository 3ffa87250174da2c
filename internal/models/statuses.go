package models

type UserStatus string
type UserRole string
type PurchaseStatus string
type RewardActionType string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleReader UserRole = "reader"
	UserRoleAdmin  UserRole = "admin"

	// Покупка никогда не удаляется: возврат - это смена статуса,
	// история остается для аудита.
	PurchaseStatusActive   PurchaseStatus = "active"
	PurchaseStatusRefunded PurchaseStatus = "refunded"

	// Типы reward-действий. Лог append-only, никогда не мутируется;
	// дневной лимит премиума считается только по RewardAdPremium.
	RewardAdPremium  RewardActionType = "ad_premium"
	RewardAdChapter  RewardActionType = "ad_chapter"
	RewardAdJournal  RewardActionType = "ad_journal"
	RewardAdDownload RewardActionType = "ad_download"
)
