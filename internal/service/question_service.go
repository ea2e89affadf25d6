package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/domain/repository"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
	"github.com/yourusername/quorum-api/internal/pkg/week"
)

// MinOptionsPerQuestion - минимальное число вариантов ответа у вопроса
const MinOptionsPerQuestion = 2

// OptionInput - вариант ответа при создании вопроса
type OptionInput struct {
	Text  string
	Order int
}

// CreateQuestionInput - данные для создания вопроса
type CreateQuestionInput struct {
	Text        string
	Module      entity.Module
	Scope       entity.Scope
	Date        *time.Time // любая дата недели; привязывается к понедельнику
	EntityID    *uint      // партия или команда в зависимости от модуля
	IsMandatory bool
	Options     []OptionInput
}

// QuestionService предоставляет методы для работы с вопросами
type QuestionService struct {
	questionRepo repository.QuestionRepository
	partyRepo    repository.PartyRepository
	teamRepo     repository.TeamRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	partyRepo repository.PartyRepository,
	teamRepo repository.TeamRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		partyRepo:    partyRepo,
		teamRepo:     teamRepo,
	}
}

// CreateQuestion создает вопрос вместе с вариантами ответа.
// Дата планирования всегда привязывается к понедельнику своей недели;
// текст после создания неизменяем (пути редактирования нет).
func (s *QuestionService) CreateQuestion(input CreateQuestionInput) (*entity.Question, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	question := &entity.Question{
		Text:        strings.TrimSpace(input.Text),
		Module:      input.Module,
		Scope:       input.Scope,
		IsMandatory: input.IsMandatory,
	}

	if input.Scope != entity.ScopeTimeless {
		date := time.Now()
		if input.Date != nil {
			date = *input.Date
		}
		weekStart := week.StartOf(date)
		question.WeekStartDate = &weekStart
	}

	if input.Scope == entity.ScopeSpecific {
		if input.Module == entity.ModulePolitics {
			question.PartyID = input.EntityID
		} else {
			question.TeamID = input.EntityID
		}
	}

	options := make([]entity.AnswerOption, len(input.Options))
	for i, opt := range input.Options {
		options[i] = entity.AnswerOption{
			Text:  strings.TrimSpace(opt.Text),
			Order: opt.Order,
		}
	}
	question.Options = options

	if err := s.questionRepo.CreateWithOptions(question); err != nil {
		log.Printf("[QuestionService] Ошибка создания вопроса: %v", err)
		return nil, err
	}
	return question, nil
}

// validateInput проверяет данные создания вопроса
func (s *QuestionService) validateInput(input *CreateQuestionInput) error {
	if strings.TrimSpace(input.Text) == "" {
		return fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if !input.Module.IsValid() {
		return fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, input.Module)
	}
	if !input.Scope.IsValid() {
		return fmt.Errorf("%w: unknown scope %q", apperrors.ErrValidation, input.Scope)
	}

	if len(input.Options) < MinOptionsPerQuestion {
		return fmt.Errorf("%w: at least %d answer options are required", apperrors.ErrValidation, MinOptionsPerQuestion)
	}
	for _, opt := range input.Options {
		if strings.TrimSpace(opt.Text) == "" {
			return fmt.Errorf("%w: answer option text is required", apperrors.ErrValidation)
		}
	}

	if input.Scope == entity.ScopeSpecific {
		if input.EntityID == nil {
			return fmt.Errorf("%w: specific question requires an entity reference", apperrors.ErrValidation)
		}
		// Ссылка должна указывать на существующую сущность модуля
		var err error
		if input.Module == entity.ModulePolitics {
			_, err = s.partyRepo.GetByID(*input.EntityID)
		} else {
			_, err = s.teamRepo.GetByID(*input.EntityID)
		}
		if err != nil {
			return fmt.Errorf("%w: referenced entity #%d does not exist", apperrors.ErrValidation, *input.EntityID)
		}
	} else if input.EntityID != nil {
		return fmt.Errorf("%w: entity reference is only allowed for specific scope", apperrors.ErrValidation)
	}

	if input.Scope == entity.ScopeTimeless && input.Date != nil {
		return fmt.Errorf("%w: timeless question cannot have a week date", apperrors.ErrValidation)
	}

	return nil
}

// GetQuestion возвращает вопрос с вариантами ответа
func (s *QuestionService) GetQuestion(id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// ListQuestions возвращает вопросы с пагинацией для админ-панели
func (s *QuestionService) ListQuestions(page, pageSize int) ([]entity.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}
	return s.questionRepo.List(pageSize, (page-1)*pageSize)
}

// DeleteQuestion удаляет вопрос каскадно: варианты, ответы и комментарии
// удаляются в той же транзакции
func (s *QuestionService) DeleteQuestion(id uint) error {
	if err := s.questionRepo.DeleteCascade(id); err != nil {
		return err
	}
	log.Printf("[QuestionService] Вопрос #%d удален вместе с ответами и комментариями", id)
	return nil
}
