package services

import (
	"strings"
	"testing"

	"readly_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessFixture(t *testing.T) (*AccessServiceImpl, *fakeBookRepo, *fakePurchaseRepo, *fakeUnlockRepo, *models.Book) {
	setupTestConfig()
	books := newFakeBookRepo()
	purchases := newFakePurchaseRepo()
	unlocks := newFakeUnlockRepo()

	book := &models.Book{Title: "The Pragmatic Reader", Author: "A. Writer", IsPublished: true}
	require.NoError(t, books.Create(nil, book))
	content := strings.Repeat("lorem ipsum dolor sit amet ", 40)
	for i := 1; i <= 8; i++ {
		require.NoError(t, books.CreateChapter(nil, &models.Chapter{
			BookID: book.ID, Number: i, Title: "Chapter", Content: content,
		}))
	}

	svc := &AccessServiceImpl{
		bookRepo:     books,
		purchaseRepo: purchases,
		unlockRepo:   unlocks,
	}
	return svc, books, purchases, unlocks, book
}

func TestGetChapter_FreeWithinThreshold(t *testing.T) {
	svc, _, _, _, book := newAccessFixture(t)

	resp, err := svc.GetChapter(nil, "user-1", book.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, "FREE", resp.Tier)
	assert.Equal(t, 1.0, resp.RevealFraction)
}

func TestGetChapter_LockedBeyondThreshold(t *testing.T) {
	svc, _, _, _, book := newAccessFixture(t)

	full, err := svc.bookRepo.FindChapter(nil, book.ID, 4)
	require.NoError(t, err)

	resp, err := svc.GetChapter(nil, "user-1", book.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, "LOCKED", resp.Tier)
	assert.Equal(t, 0.25, resp.RevealFraction)
	// Контент обрезан, а не отдан целиком
	assert.Less(t, len(resp.Content), len(full.Content))
	assert.NotEmpty(t, resp.Content)
}

func TestGetChapter_PurchaseBeatsEverything(t *testing.T) {
	svc, _, purchases, _, book := newAccessFixture(t)

	_, _, err := purchases.CreateIdempotent(nil, &models.Purchase{
		UserID: "user-1", BookID: book.ID, Status: models.PurchaseStatusActive,
	})
	require.NoError(t, err)

	resp, err := svc.GetChapter(nil, "user-1", book.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, "FULL", resp.Tier)
}

func TestGetChapter_RefundedPurchaseGivesNoAccess(t *testing.T) {
	svc, _, purchases, _, book := newAccessFixture(t)

	p, _, err := purchases.CreateIdempotent(nil, &models.Purchase{
		UserID: "user-1", BookID: book.ID, Status: models.PurchaseStatusActive,
	})
	require.NoError(t, err)
	require.NoError(t, purchases.MarkRefunded(nil, p.ID, testNow))

	// Возврат снимает FULL при следующем же разрешении тира
	resp, err := svc.GetChapter(nil, "user-1", book.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, "LOCKED", resp.Tier)
}

func TestGetChapter_UnlockedChapter(t *testing.T) {
	svc, _, _, unlocks, book := newAccessFixture(t)

	_, err := unlocks.InsertIdempotent(nil, &models.ChapterUnlock{
		UserID: "user-1", BookID: book.ID, ChapterNumber: 6,
	}, &models.RewardAction{UserID: "user-1", Action: models.RewardAdChapter})
	require.NoError(t, err)

	resp, err := svc.GetChapter(nil, "user-1", book.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, "UNLOCKED", resp.Tier)

	// Соседняя глава остается закрытой
	other, err := svc.GetChapter(nil, "user-1", book.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "LOCKED", other.Tier)
}

func TestGetChapter_Anonymous(t *testing.T) {
	svc, _, _, _, book := newAccessFixture(t)

	free, err := svc.GetChapter(nil, "", book.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "FREE", free.Tier)

	locked, err := svc.GetChapter(nil, "", book.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "LOCKED", locked.Tier)
}

func TestGetTableOfContents_TiersPerChapter(t *testing.T) {
	svc, _, _, unlocks, book := newAccessFixture(t)

	_, err := unlocks.InsertIdempotent(nil, &models.ChapterUnlock{
		UserID: "user-1", BookID: book.ID, ChapterNumber: 5,
	}, &models.RewardAction{UserID: "user-1", Action: models.RewardAdChapter})
	require.NoError(t, err)

	items, err := svc.GetTableOfContents(nil, "user-1", book.ID)
	require.NoError(t, err)
	require.Len(t, items, 8)

	tiers := make(map[int]string)
	for _, it := range items {
		tiers[it.Number] = it.Tier
	}
	assert.Equal(t, "FREE", tiers[1])
	assert.Equal(t, "FREE", tiers[3])
	assert.Equal(t, "LOCKED", tiers[4])
	assert.Equal(t, "UNLOCKED", tiers[5])
	assert.Equal(t, "LOCKED", tiers[8])
}
