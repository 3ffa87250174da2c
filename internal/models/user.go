package models

import "time"

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null"`
	PasswordHash      string     `gorm:"not null"`
	Role              UserRole   `gorm:"type:varchar(20);not null;default:'reader'"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'"`
	IsVerified        bool       `gorm:"default:false"`
	VerificationToken string
	ResetToken        string
	ResetTokenExp     *time.Time

	// PremiumUntil - кэш максимального expires_at по trial и всем
	// ad-грантам. Всегда выводим заново реплеем premium_access_grants
	// (см. EntitlementRepository.ReplayPremiumUntil) - кэш не источник
	// истины, а ускорение для getStatus.
	PremiumUntil *time.Time

	// TrialUsed переходит false -> true ровно один раз и никогда не
	// сбрасывается. Выставляется и при startTrial, и при первом
	// ad-гранте (ad-грант сжигает право на trial).
	TrialUsed bool `gorm:"default:false"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
