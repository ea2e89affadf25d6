package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем.
// Используется для кеширования нефильтрованной статистики вопросов.
type CacheRepository interface {
	Get(key string) (string, error)
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
}
