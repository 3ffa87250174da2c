package entitlement

import (
	"strings"
	"unicode"
)

// Tier - уровень доступа к конкретной главе.
type Tier string

const (
	// TierFull - книга куплена целиком.
	TierFull Tier = "FULL"
	// TierFree - глава в пределах бесплатного порога.
	TierFree Tier = "FREE"
	// TierUnlocked - глава разблокирована навсегда просмотром рекламы.
	TierUnlocked Tier = "UNLOCKED"
	// TierLocked - доступно только частичное превью.
	TierLocked Tier = "LOCKED"
)

// Access - результат разрешения доступа для пары (глава, пользователь).
type Access struct {
	Tier           Tier    `json:"tier"`
	RevealFraction float64 `json:"reveal_fraction"`
}

// ResolveTier - чистая функция разрешения уровня доступа. Без побочных
// эффектов; вызывается заново при каждом открытии главы и никогда не
// кэшируется через событие покупки/разблокировки.
//
// Порядок проверок фиксирован: покупка > бесплатный порог > разовая
// разблокировка > превью.
func ResolveTier(chapterNumber, freeThreshold int, isPurchased bool, unlocked map[int]bool, previewFraction float64) Access {
	if isPurchased {
		return Access{Tier: TierFull, RevealFraction: 1.0}
	}
	if chapterNumber <= freeThreshold {
		return Access{Tier: TierFree, RevealFraction: 1.0}
	}
	if unlocked[chapterNumber] {
		return Access{Tier: TierUnlocked, RevealFraction: 1.0}
	}
	return Access{Tier: TierLocked, RevealFraction: previewFraction}
}

// PreviewCut обрезает контент до доли fraction по границе слова.
// fraction >= 1 возвращает контент как есть, fraction <= 0 - пустую
// строку.
func PreviewCut(content string, fraction float64) string {
	if fraction >= 1.0 {
		return content
	}
	if fraction <= 0 {
		return ""
	}

	runes := []rune(content)
	cut := int(float64(len(runes)) * fraction)
	if cut >= len(runes) {
		return content
	}
	if cut == 0 {
		return ""
	}

	// Откатываемся к последнему пробелу, чтобы не резать слово
	for cut > 0 && !unicode.IsSpace(runes[cut-1]) {
		cut--
	}
	// Контент без единого пробела в пределах доли - отдаем долю как есть
	if cut == 0 {
		cut = int(float64(len(runes)) * fraction)
	}

	return strings.TrimRight(string(runes[:cut]), " \t\n\r")
}
