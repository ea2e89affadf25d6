package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrExpiredToken используется, когда токен истек.
	ErrExpiredToken = errors.New("token is expired")

	// ErrConflict используется для конфликтов состояния
	// (например, повторный ответ на вопрос или повторная выдача роли).
	ErrConflict = errors.New("resource state conflict")

	// ErrUpstream используется при сбоях внешних сервисов (SMS, AI-генерация).
	ErrUpstream = errors.New("upstream service failure")

	// ErrConfig используется, когда фича отключена из-за отсутствующих
	// учетных данных внешнего провайдера. Фатальна только для самой фичи.
	ErrConfig = errors.New("feature is not configured")
)
