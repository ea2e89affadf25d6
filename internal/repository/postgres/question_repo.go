package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// CreateWithOptions создает вопрос вместе с вариантами ответа в одной транзакции.
// GORM вставляет ассоциации Options вместе с вопросом; транзакция гарантирует,
// что вопрос без вариантов в БД не появится.
func (r *QuestionRepo) CreateWithOptions(question *entity.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(question).Error
	})
}

// GetByID возвращает вопрос с вариантами ответа
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_order, id")
	}).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByModuleWeek возвращает вопросы модуля для недели (weekStart - понедельник)
func (r *QuestionRepo) GetByModuleWeek(module entity.Module, weekStart time.Time) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_order, id")
	}).
		Where("module = ? AND week_start_date = ?", module, weekStart).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetTimeless возвращает вневременные вопросы модуля
func (r *QuestionRepo) GetTimeless(module entity.Module) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_order, id")
	}).
		Where("module = ? AND scope = ?", module, entity.ScopeTimeless).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// List возвращает вопросы с пагинацией для админ-панели
func (r *QuestionRepo) List(limit, offset int) ([]entity.Question, int64, error) {
	var questions []entity.Question
	var total int64

	if err := r.db.Model(&entity.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_order, id")
	}).
		Limit(limit).Offset(offset).Order("id DESC").
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// DeleteCascade удаляет вопрос вместе с вариантами, ответами и комментариями.
// Все внутри одной транзакции: частичный каскад оставил бы осиротевшие строки.
// Сначала дочерние строки, потом сам вопрос: внешние ключи без ON DELETE CASCADE
// не дают удалить вопрос, пока на него есть ссылки.
func (r *QuestionRepo) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&entity.UserAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&entity.AnswerOption{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Question{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
