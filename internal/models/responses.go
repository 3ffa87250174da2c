package models

import "time"

// Response DTO для исходящих ответов.

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string   `json:"id"`
		Email string   `json:"email"`
		Role  UserRole `json:"role"`
	} `json:"user"`
}

// PremiumStatusResponse - ответ getStatus премиума. Все поля выводятся
// на лету из лога грантов, ничего не кэшируется на клиенте.
type PremiumStatusResponse struct {
	IsPremium        bool       `json:"is_premium"`
	PremiumUntil     *time.Time `json:"premium_until,omitempty"`
	DaysRemaining    int        `json:"days_remaining"`
	TrialUsed        bool       `json:"trial_used"`
	AdsWatchedToday  int        `json:"ads_watched_today"`
	AdsLeftToday     int        `json:"ads_left_today"`
	MaxAdsPerDay     int        `json:"max_ads_per_day"`
	AdGrantDays      int        `json:"ad_grant_days"`
	TrialDays        int        `json:"trial_days"`
}

// JournalStatusResponse - состояние окна доступа к журналу.
type JournalStatusResponse struct {
	HasAccess       bool       `json:"has_access"`
	FreeTrialEndsAt time.Time  `json:"free_trial_ends_at"`
	AccessUntil     *time.Time `json:"access_until,omitempty"`
	DaysRemaining   int        `json:"days_remaining"`
	ExtensionDays   int        `json:"extension_days"`
}

// DownloadStatusResponse - прогресс накопительного счетчика скачивания.
type DownloadStatusResponse struct {
	BookID      string     `json:"book_id"`
	AdsWatched  int        `json:"ads_watched"`
	AdsRequired int        `json:"ads_required"`
	IsUnlocked  bool       `json:"is_unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// ChapterAccessResponse - глава с разрешенным уровнем доступа.
// Content уже обрезан до reveal_fraction для LOCKED.
type ChapterAccessResponse struct {
	BookID         string  `json:"book_id"`
	Number         int     `json:"number"`
	Title          string  `json:"title"`
	Tier           string  `json:"tier"`
	RevealFraction float64 `json:"reveal_fraction"`
	Content        string  `json:"content"`
}

// ChapterListItem - элемент оглавления: без контента, но с тиром.
type ChapterListItem struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Tier   string `json:"tier"`
}

// UnlockChapterResponse - результат идемпотентной разблокировки.
type UnlockChapterResponse struct {
	BookID         string `json:"book_id"`
	ChapterNumber  int    `json:"chapter_number"`
	AlreadyGranted bool   `json:"already_granted"`
}

// BookProgressPayload - прогресс по одной книге в sync-запросе/ответе.
type BookProgressPayload struct {
	CompletedChapters []int          `json:"completed_chapters"`
	Reflections       map[int]string `json:"reflections"`
}

// SyncProgressRequest - клиентский снимок прогресса по книгам.
type SyncProgressRequest struct {
	Books map[string]BookProgressPayload `json:"books"`
}

// SyncProgressResponse - авторитетный слитый снимок; клиент замещает им
// свой локальный кэш целиком.
type SyncProgressResponse struct {
	Books map[string]BookProgressPayload `json:"books"`
}
