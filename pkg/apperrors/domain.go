package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки предметной области SkillSwap.
Сервисы возвращают их напрямую, репозитории - только sentinel-ошибки.
*/

// =========================================================================
// Фабричные функции
// =========================================================================

// ErrNotFound - ошибка "не найдено" (404) для произвольного ресурса
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// NewNotFoundError - 404 с доменом и сообщением
func NewNotFoundError(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists - ошибка "уже существует" (409)
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - невалидная операция (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - переход статуса запрещен (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

// --- Skills ---

var ErrSkillNotFound = New(
	CodeNotFound,
	"skill",
	"Skill not found",
	http.StatusNotFound,
)

// ErrSkillAccessDenied - навык чужой или не существует (не раскрываем, что именно)
var ErrSkillAccessDenied = New(
	CodeForbidden,
	"skill",
	"Forbidden",
	http.StatusForbidden,
)

var ErrSkillInUse = New(
	CodeConflict,
	"skill",
	"Skill is referenced by existing swaps",
	http.StatusConflict,
)

// --- Swaps ---

var ErrSwapNotFound = New(
	CodeNotFound,
	"swap",
	"Swap not found",
	http.StatusNotFound,
)

var ErrSwapAccessDenied = New(
	CodeForbidden,
	"swap",
	"Forbidden",
	http.StatusForbidden,
)

var ErrSwapWithSelf = New(
	CodeInvalidOperation,
	"swap",
	"You cannot request a swap with yourself",
	http.StatusBadRequest,
)

var ErrSkillProviderMismatch = New(
	CodeInvalidOperation,
	"swap",
	"Skill does not belong to the provider",
	http.StatusBadRequest,
)

// --- Reviews ---

var ErrReviewNotParticipant = New(
	CodeForbidden,
	"review",
	"Only swap participants can leave a review",
	http.StatusForbidden,
)

var ErrInvalidReviewee = New(
	CodeInvalidOperation,
	"review",
	"Reviewee must be the other participant of the swap",
	http.StatusBadRequest,
)

var ErrReviewAlreadyExists = New(
	CodeAlreadyExists,
	"review",
	"You have already reviewed this swap",
	http.StatusConflict,
)

// --- Uploads & Files ---

// ErrFileTooLarge - файл превышает максимальный размер
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - MIME-тип файла не разрешен
var ErrInvalidFileType = New(
	CodeUnsupportedMedia,
	"upload",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrNoFileUploaded = New(
	CodeValidationFailed,
	"upload",
	"No file uploaded",
	http.StatusBadRequest,
)

var ErrFileNotFound = New(
	CodeNotFound,
	"file",
	"File not found",
	http.StatusNotFound,
)

var ErrFileAccessDenied = New(
	CodeForbidden,
	"file",
	"Forbidden",
	http.StatusForbidden,
)

// --- Auth ---

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token expired",
	http.StatusUnauthorized,
)
