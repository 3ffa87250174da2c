package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"readly_backend/internal/auth"
	"readly_backend/internal/email"
	"readly_backend/internal/logger"
	"readly_backend/internal/models"
	"readly_backend/internal/repositories"
	"readly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *models.RegisterRequest) error
	Login(db *gorm.DB, req *models.LoginRequest) (*models.LoginResponse, error)
	RefreshToken(db *gorm.DB, refreshToken string) (*models.LoginResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	VerifyEmail(db *gorm.DB, token string) error
	ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	emailProvider    email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		emailProvider:    emailProvider,
	}
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(db *gorm.DB, req *models.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	verificationToken := generateRandomToken()

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              models.UserRoleReader,
		Status:            models.UserStatusPending,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	// Письмо не должно блокировать регистрацию
	go func(to, token string) {
		if err := s.emailProvider.SendVerification(to, token); err != nil {
			logger.WithError(err).Warn("Failed to send verification email")
		}
	}(user.Email, verificationToken)

	return nil
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(db *gorm.DB, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueTokens(db, user)
}

// RefreshToken - обмен refresh-токена на новую пару
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (*models.LoginResponse, error) {
	stored, err := s.refreshTokenRepo.Find(db, refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	if time.Now().After(stored.ExpiresAt) {
		s.refreshTokenRepo.Delete(db, refreshToken)
		return nil, apperrors.NewUnauthorizedError("Refresh token expired")
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	// Ротация: старый токен умирает при каждом обмене
	if err := s.refreshTokenRepo.Delete(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(db, user)
}

// Logout - инвалидация refresh-токена
func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.refreshTokenRepo.Delete(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyEmail - подтверждение email по токену из письма
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("Invalid verification token")
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.VerifyUser(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ChangePassword - смена пароля с проверкой текущего
func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	// Все сессии сбрасываются
	return s.refreshTokenRepo.DeleteByUser(db, userID)
}

func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*models.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rt := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(db, rt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	resp.User.ID = user.ID
	resp.User.Email = user.Email
	resp.User.Role = user.Role
	return resp, nil
}

func generateRandomToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
