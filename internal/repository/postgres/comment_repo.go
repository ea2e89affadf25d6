package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// CommentRepo реализует repository.CommentRepository
type CommentRepo struct {
	db *gorm.DB
}

// NewCommentRepo создает новый репозиторий комментариев
func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// Create создает новый комментарий
func (r *CommentRepo) Create(comment *entity.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID возвращает комментарий по ID
func (r *CommentRepo) GetByID(id uint) (*entity.Comment, error) {
	var comment entity.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetByQuestionID возвращает комментарии вопроса с пагинацией, новые первыми
func (r *CommentRepo) GetByQuestionID(questionID uint, limit, offset int) ([]entity.Comment, int64, error) {
	var comments []entity.Comment
	var total int64

	if err := r.db.Model(&entity.Comment{}).Where("question_id = ?", questionID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("question_id = ?", questionID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Delete удаляет комментарий
func (r *CommentRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkReported помечает комментарий как отправленный на модерацию
func (r *CommentRepo) MarkReported(id uint) error {
	result := r.db.Model(&entity.Comment{}).Where("id = ?", id).Update("reported", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
