package models

import (
	"time"

	"gorm.io/datatypes"
)

// PremiumTrial - одна запись на пользователя, создается атомарно с
// выставлением users.trial_used (оба или ни одного).
type PremiumTrial struct {
	BaseModel
	UserID   string    `gorm:"not null;uniqueIndex"`
	StartsAt time.Time `gorm:"not null"`
	EndsAt   time.Time `gorm:"not null"`
}

// PremiumAccessGrant - append-only лог ad-грантов премиума.
// Эффективный premium_until пользователя = max(expires_at) по trial и
// всем грантам; кэш на User всегда выводим реплеем этого лога.
type PremiumAccessGrant struct {
	BaseModel
	UserID       string    `gorm:"not null;index"`
	GrantedAt    time.Time `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	DurationDays int       `gorm:"not null"`
	Source       string    `gorm:"type:varchar(50)"` // "rewarded_ad"
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
}

// ChapterUnlock - постоянный грант на главу, заработанный одним
// просмотром рекламы. Вставка идемпотентна (unique + ON CONFLICT DO
// NOTHING); не истекает вместе с премиумом.
type ChapterUnlock struct {
	BaseModel
	UserID        string `gorm:"not null;index;uniqueIndex:idx_chapter_unlocks_user_book_num"`
	BookID        string `gorm:"not null;index;uniqueIndex:idx_chapter_unlocks_user_book_num"`
	ChapterNumber int    `gorm:"not null;uniqueIndex:idx_chapter_unlocks_user_book_num"`
}

// RewardAction - запись о каждом reward-действии (append-only).
// Используется для аудита и для дневного лимита премиума.
type RewardAction struct {
	BaseModel
	UserID   string           `gorm:"not null;index"`
	Action   RewardActionType `gorm:"type:varchar(30);not null;index"`
	Metadata datatypes.JSON   `gorm:"type:jsonb"`
}

func (RewardAction) TableName() string {
	return "reward_actions"
}

// JournalAccess - окно доступа к журналу/календарю. FreeTrialEndsAt
// фиксируется при первом обращении и больше не меняется; AccessUntil
// продлевается просмотрами рекламы. Доступ есть, пока now раньше
// любого из двух окон.
type JournalAccess struct {
	BaseModel
	UserID          string    `gorm:"not null;uniqueIndex"`
	FreeTrialEndsAt time.Time `gorm:"not null"`
	AccessUntil     *time.Time
}

// DownloadCounter - накопительный счетчик реклам за скачивание PDF
// книги. AdsRequired фиксируется при создании строки; IsUnlocked
// выставляется true ровно один раз и никогда не сбрасывается.
type DownloadCounter struct {
	BaseModel
	UserID      string `gorm:"not null;index;uniqueIndex:idx_download_counters_user_book"`
	BookID      string `gorm:"not null;index;uniqueIndex:idx_download_counters_user_book"`
	AdsWatched  int    `gorm:"not null;default:0"`
	AdsRequired int    `gorm:"not null"`
	IsUnlocked  bool   `gorm:"not null;default:false"`
	UnlockedAt  *time.Time
}
