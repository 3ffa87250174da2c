package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"readly_backend/internal/models"
	"readly_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getChapter(t *testing.T, ts *helpers.TestServer, token, bookID string, number int) models.ChapterAccessResponse {
	path := fmt.Sprintf("/api/v1/books/%s/chapters/%d", bookID, number)
	res, bodyStr := ts.SendRequest(t, "GET", path, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Глава должна отдаваться. Ответ: "+bodyStr)

	var resp models.ChapterAccessResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	return resp
}

// TestChapterAccess_Tiers - бесплатный порог и превью за ним
func TestChapterAccess_Tiers(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginReader(t, ts)
	book := helpers.CreateBookWithChapters(t, ts.DB, "Tiered Book", 6)

	free := getChapter(t, ts, token, book.ID, 1)
	assert.Equal(t, "FREE", free.Tier)
	assert.Equal(t, 1.0, free.RevealFraction)

	locked := getChapter(t, ts, token, book.ID, 4)
	assert.Equal(t, "LOCKED", locked.Tier)
	assert.Less(t, locked.RevealFraction, 1.0)
	assert.Less(t, len(locked.Content), len(free.Content))
	assert.NotEmpty(t, locked.Content)
}

// TestChapterAccess_Anonymous - превью доступно без логина
func TestChapterAccess_Anonymous(t *testing.T) {
	ts := GetTestServer(t)
	book := helpers.CreateBookWithChapters(t, ts.DB, "Public Book", 5)

	free := getChapter(t, ts, "", book.ID, 2)
	assert.Equal(t, "FREE", free.Tier)

	locked := getChapter(t, ts, "", book.ID, 5)
	assert.Equal(t, "LOCKED", locked.Tier)
}

// TestChapterUnlock_Idempotent - разблокировка главы за рекламу
func TestChapterUnlock_Idempotent(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginReader(t, ts)
	book := helpers.CreateBookWithChapters(t, ts.DB, "Unlockable", 6)

	path := "/api/v1/books/" + book.ID + "/unlocks"
	body := map[string]interface{}{"chapter_number": 5, "ssv_token": ""}

	res, bodyStr := ts.SendRequest(t, "POST", path, token, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var unlock models.UnlockChapterResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &unlock))
	assert.False(t, unlock.AlreadyGranted)

	// Повтор - 200 и already_granted
	res, bodyStr = ts.SendRequest(t, "POST", path, token, body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &unlock))
	assert.True(t, unlock.AlreadyGranted)

	// Глава читается целиком, соседняя остается превью
	unlocked := getChapter(t, ts, token, book.ID, 5)
	assert.Equal(t, "UNLOCKED", unlocked.Tier)
	neighbor := getChapter(t, ts, token, book.ID, 6)
	assert.Equal(t, "LOCKED", neighbor.Tier)

	// Список разблокировок
	res, bodyStr = ts.SendRequest(t, "GET", path, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var list struct {
		ChapterNumbers []int `json:"chapter_numbers"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &list))
	assert.Equal(t, []int{5}, list.ChapterNumbers)
}

// TestChapterUnlock_UnknownChapter - несуществующая глава дает 404
func TestChapterUnlock_UnknownChapter(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginReader(t, ts)
	book := helpers.CreateBookWithChapters(t, ts.DB, "Short Book", 2)

	path := "/api/v1/books/" + book.ID + "/unlocks"
	res, _ := ts.SendRequest(t, "POST", path, token, map[string]interface{}{"chapter_number": 99})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestPurchase_GrantsFullAccess - покупка открывает всю книгу,
// возврат закрывает
func TestPurchase_GrantsFullAccess(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginReader(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	book := helpers.CreateBookWithChapters(t, ts.DB, "Purchasable", 6)

	confirmBody := map[string]interface{}{
		"book_id":    book.ID,
		"provider":   "stripe",
		"receipt_id": "receipt-" + book.ID,
		"amount":     4.99,
		"currency":   "USD",
	}

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/purchases/confirm", token, confirmBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Покупка должна подтвердиться. Ответ: "+bodyStr)

	var purchase models.Purchase
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &purchase))

	full := getChapter(t, ts, token, book.ID, 6)
	assert.Equal(t, "FULL", full.Tier)

	// Повторный колбэк провайдера - та же покупка, не дубль
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/purchases/confirm", token, confirmBody)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var second models.Purchase
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &second))
	assert.Equal(t, purchase.ID, second.ID)

	// Возврат снимает доступ при следующем же запросе
	res, _ = ts.SendRequest(t, "POST", "/api/v1/admin/purchases/"+purchase.ID+"/refund", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	locked := getChapter(t, ts, token, book.ID, 6)
	assert.Equal(t, "LOCKED", locked.Tier)
}

// TestTableOfContents_TiersPerChapter - оглавление размечает тиры
func TestTableOfContents_TiersPerChapter(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginReader(t, ts)
	book := helpers.CreateBookWithChapters(t, ts.DB, "TOC Book", 5)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/books/"+book.ID+"/chapters", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var toc struct {
		Chapters []models.ChapterListItem `json:"chapters"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &toc))
	require.Len(t, toc.Chapters, 5)

	assert.Equal(t, "FREE", toc.Chapters[0].Tier)
	assert.Equal(t, "FREE", toc.Chapters[2].Tier)
	assert.Equal(t, "LOCKED", toc.Chapters[3].Tier)
	assert.Equal(t, "LOCKED", toc.Chapters[4].Tier)
}
