package repository

import (
	"github.com/yourusername/quorum-api/internal/domain/entity"
)

// CommentRepository определяет методы для работы с комментариями
type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id uint) (*entity.Comment, error)
	// GetByQuestionID возвращает комментарии вопроса, новые первыми
	GetByQuestionID(questionID uint, limit, offset int) ([]entity.Comment, int64, error)
	Delete(id uint) error
	// MarkReported помечает комментарий как отправленный на модерацию
	MarkReported(id uint) error
}
