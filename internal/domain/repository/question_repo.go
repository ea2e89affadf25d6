package repository

import (
	"time"

	"github.com/yourusername/quorum-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	// CreateWithOptions создает вопрос вместе с вариантами ответа в одной транзакции
	CreateWithOptions(question *entity.Question) error

	// GetByID возвращает вопрос с вариантами ответа
	GetByID(id uint) (*entity.Question, error)

	// GetByModuleWeek возвращает вопросы модуля для недели (weekStart - понедельник)
	GetByModuleWeek(module entity.Module, weekStart time.Time) ([]entity.Question, error)

	// GetTimeless возвращает вневременные вопросы модуля
	GetTimeless(module entity.Module) ([]entity.Question, error)

	// List возвращает вопросы с пагинацией (для админ-панели)
	List(limit, offset int) ([]entity.Question, int64, error)

	// DeleteCascade удаляет вопрос вместе с вариантами, ответами и комментариями
	// в одной транзакции. Частичный каскад недопустим.
	DeleteCascade(id uint) error
}
