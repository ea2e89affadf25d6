package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// UserAnswerRepo реализует repository.UserAnswerRepository
type UserAnswerRepo struct {
	db *gorm.DB
}

// NewUserAnswerRepo создает новый репозиторий ответов
func NewUserAnswerRepo(db *gorm.DB) *UserAnswerRepo {
	return &UserAnswerRepo{db: db}
}

// Create сохраняет ответ пользователя. Уникальный индекс (user_id, question_id)
// гарантирует ровно одну запись даже при конкурентных попытках; повторная
// вставка отображается в ErrConflict, запись не перезаписывается.
func (r *UserAnswerRepo) Create(answer *entity.UserAnswer) error {
	err := r.db.Create(answer).Error
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user #%d already answered question #%d",
				apperrors.ErrConflict, answer.UserID, answer.QuestionID)
		}
		return err
	}
	return nil
}

// GetAnsweredQuestionIDs возвращает подмножество questionIDs, на которые
// пользователь уже ответил
func (r *UserAnswerRepo) GetAnsweredQuestionIDs(userID uint, questionIDs []uint) ([]uint, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.Model(&entity.UserAnswer{}).
		Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// HasAnswered проверяет, отвечал ли пользователь на вопрос
func (r *UserAnswerRepo) HasAnswered(userID, questionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.UserAnswer{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Count(&count).Error
	return count > 0, err
}
