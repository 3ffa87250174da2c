package services

import (
	"testing"

	"readly_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDownloadFixture(t *testing.T) (*DownloadServiceImpl, *fakeDownloadRepo, *models.Book) {
	setupTestConfig()
	books := newFakeBookRepo()
	downloads := newFakeDownloadRepo()

	book := &models.Book{Title: "Atomic Habits", Author: "J. Clear", IsPublished: true}
	require.NoError(t, books.Create(nil, book))

	svc := &DownloadServiceImpl{
		bookRepo:     books,
		downloadRepo: downloads,
		verifier:     testVerifier(),
		now:          fixedClock(testNow),
	}
	return svc, downloads, book
}

func TestDownloadWatchAd_AccumulatesToUnlock(t *testing.T) {
	svc, _, book := newDownloadFixture(t)

	first, err := svc.WatchAd(nil, "user-1", book.ID, &models.AdRewardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.AdsWatched)
	assert.Equal(t, 3, first.AdsRequired)
	assert.False(t, first.IsUnlocked)

	second, err := svc.WatchAd(nil, "user-1", book.ID, &models.AdRewardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, second.AdsWatched)
	assert.False(t, second.IsUnlocked)

	// Ровно на пороге счетчик разблокируется
	third, err := svc.WatchAd(nil, "user-1", book.ID, &models.AdRewardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, third.AdsWatched)
	assert.True(t, third.IsUnlocked)
	require.NotNil(t, third.UnlockedAt)
	assert.Equal(t, testNow, *third.UnlockedAt)
}

func TestDownloadWatchAd_ExtraWatchIsNoop(t *testing.T) {
	svc, downloads, book := newDownloadFixture(t)

	for i := 0; i < 3; i++ {
		_, err := svc.WatchAd(nil, "user-1", book.ID, &models.AdRewardRequest{})
		require.NoError(t, err)
	}

	// Лишний просмотр после разблокировки: состояние не меняется,
	// reward-действие не пишется
	resp, err := svc.WatchAd(nil, "user-1", book.ID, &models.AdRewardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.AdsWatched)
	assert.True(t, resp.IsUnlocked)
	assert.Len(t, downloads.actions, 3)
}

func TestDownloadWatchAd_CounterIsPerBook(t *testing.T) {
	svc, _, book := newDownloadFixture(t)

	other := &models.Book{Title: "Other", Author: "A", IsPublished: true}
	require.NoError(t, svc.bookRepo.Create(nil, other))

	_, err := svc.WatchAd(nil, "user-1", book.ID, &models.AdRewardRequest{})
	require.NoError(t, err)

	status, err := svc.GetStatus(nil, "user-1", other.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, status.AdsWatched)
}

func TestDownloadGetStatus_BeforeFirstWatch(t *testing.T) {
	svc, _, book := newDownloadFixture(t)

	status, err := svc.GetStatus(nil, "user-1", book.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, status.AdsWatched)
	assert.Equal(t, 3, status.AdsRequired)
	assert.False(t, status.IsUnlocked)
}
