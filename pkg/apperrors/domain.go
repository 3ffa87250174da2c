package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена entitlement-движка.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrInvalidCredentials - неверный email/пароль при логине.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrEmailAlreadyExists - email занят при регистрации.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"A user with this email already exists",
	http.StatusConflict,
)

// ErrWeakPassword - пароль не проходит минимальные требования.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password is too weak (minimum 8 characters)",
	http.StatusBadRequest,
)

// ErrUserNotVerified - email еще не подтвержден, логин закрыт.
var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"User not verified",
	http.StatusForbidden,
)

// ErrUserSuspended - аккаунт заблокирован, entitlement-операции недоступны.
var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Account is suspended",
	http.StatusForbidden,
)

// --- Entitlements ---

// ErrTrialAlreadyUsed - пробный период уже использован (trial_used = true
// или trial-запись существует). Клиент показывает "trial already used".
var ErrTrialAlreadyUsed = New(
	CodeTrialAlreadyUsed,
	"entitlement",
	"Free trial has already been used",
	http.StatusConflict,
)

// ErrDailyCapReached - достигнут дневной лимит реклам за премиум.
// Клиент показывает "come back tomorrow", состояние НЕ мутируется.
var ErrDailyCapReached = New(
	CodeDailyCapReached,
	"entitlement",
	"Daily rewarded-ad limit reached, come back tomorrow",
	http.StatusTooManyRequests,
)

// ErrAdVerificationFailed - SSV-подпись рекламной сети не прошла проверку.
var ErrAdVerificationFailed = New(
	CodeForbidden,
	"entitlement",
	"Ad reward verification failed",
	http.StatusForbidden,
)

// --- Books & Purchases ---

// ErrBookNotPublished - книга существует, но не опубликована.
var ErrBookNotPublished = New(
	CodeInvalidStatus,
	"book",
	"Book is not published",
	http.StatusNotFound,
)

// ErrPurchaseRefunded - покупка существует, но возвращена;
// доступ уровня FULL по ней не предоставляется.
var ErrPurchaseRefunded = New(
	CodeInvalidStatus,
	"purchase",
	"Purchase has been refunded",
	http.StatusConflict,
)
