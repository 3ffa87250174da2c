package services

import (
	"time"

	"readly_backend/internal/adverify"
	"readly_backend/internal/config"
)

// Фиксированный момент времени для детерминированных тестов.
var testNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func setupTestConfig() {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Entitlements.FreeChapterThreshold = 3
	cfg.Entitlements.PartialPreviewFraction = 0.25
	cfg.Entitlements.TrialDurationDays = 7
	cfg.Entitlements.AdGrantDurationDays = 1
	cfg.Entitlements.MaxAdsPerDayPremium = 5
	cfg.Entitlements.JournalFreeTrialDays = 14
	cfg.Entitlements.JournalExtensionDays = 7
	cfg.Entitlements.DownloadAdsRequired = 3
	cfg.Entitlements.RewardTimezone = "UTC"
	cfg.AdVerify.Mode = "trusted"
	config.AppConfig = cfg
}

func testVerifier() adverify.Verifier {
	return adverify.NewTrustedVerifier()
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
