package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"readly_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя с автоматическим хешированием пароля.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		rawPassword := user.PasswordHash
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.IsVerified = true

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}
	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API.
func CreateAndLoginUser(t *testing.T, ts *TestServer, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	err := CreateUser(t, ts.DB, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token, user
}

// CreateAndLoginReader создает читателя с уникальным email.
func CreateAndLoginReader(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("reader_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, email, "password123", models.UserRoleReader)
}

// CreateAndLoginAdmin создает админа с уникальным email.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, email, "password123", models.UserRoleAdmin)
}

// CreateBookWithChapters создает опубликованную книгу с n главами.
func CreateBookWithChapters(t *testing.T, db *gorm.DB, title string, n int) *models.Book {
	book := &models.Book{
		Title:       title,
		Author:      "Test Author",
		IsPublished: true,
		Price:       4.99,
		Currency:    "USD",
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("Не удалось создать книгу: %v", err)
	}

	for i := 1; i <= n; i++ {
		chapter := &models.Chapter{
			BookID:  book.ID,
			Number:  i,
			Title:   fmt.Sprintf("Chapter %d", i),
			Content: strings.Repeat("The quick brown fox jumps over the lazy dog. ", 30),
		}
		if err := db.Create(chapter).Error; err != nil {
			t.Fatalf("Не удалось создать главу %d: %v", i, err)
		}
	}
	return book
}
