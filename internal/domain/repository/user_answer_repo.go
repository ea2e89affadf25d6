package repository

import (
	"github.com/yourusername/quorum-api/internal/domain/entity"
)

// UserAnswerRepository определяет методы для работы с реестром ответов
type UserAnswerRepository interface {
	// Create сохраняет ответ. Повторный ответ на тот же вопрос возвращает
	// ErrConflict (unique violation 23505), а не перезаписывает запись.
	Create(answer *entity.UserAnswer) error

	// GetAnsweredQuestionIDs возвращает подмножество questionIDs, на которые
	// пользователь уже ответил
	GetAnsweredQuestionIDs(userID uint, questionIDs []uint) ([]uint, error)

	// HasAnswered проверяет, отвечал ли пользователь на вопрос
	HasAnswered(userID, questionID uint) (bool, error)
}
