package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/domain/repository"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
	"github.com/yourusername/quorum-api/internal/pkg/week"
	"github.com/yourusername/quorum-api/internal/service/presenter"
	"github.com/yourusername/quorum-api/internal/service/stats"
)

// StatsBroadcaster рассылает свежую статистику подписчикам вопроса
// (live-результаты по WebSocket). Может быть nil - тогда рассылки нет.
type StatsBroadcaster interface {
	BroadcastQuestionStats(questionID uint, result *stats.Result)
}

// QuestionFeed - набор вопросов недели для показа пользователю
type QuestionFeed struct {
	WeekStart string            // ISO-дата понедельника, пустая для timeless
	Grouped   presenter.Grouped // корзины general / myAffiliation / other
	// AnsweredIDs - вопросы, на которые пользователь уже ответил
	// (для них показываются результаты вместо формы)
	AnsweredIDs map[uint]bool
	// PendingMandatoryIDs - обязательные вопросы без ответа; фронт блокирует
	// остальные, пока они не отвечены
	PendingMandatoryIDs []uint
}

// SurveyService реализует жизненный цикл ответа на опрос
type SurveyService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.UserAnswerRepository
	userRepo     repository.UserRepository
	catalog      *CatalogService
	statsService *StatsService
	broadcaster  StatsBroadcaster
}

// NewSurveyService создает новый сервис опросов
func NewSurveyService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.UserAnswerRepository,
	userRepo repository.UserRepository,
	catalog *CatalogService,
	statsService *StatsService,
	broadcaster StatsBroadcaster,
) *SurveyService {
	return &SurveyService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		userRepo:     userRepo,
		catalog:      catalog,
		statsService: statsService,
		broadcaster:  broadcaster,
	}
}

// SubmitAnswer записывает ответ пользователя на вопрос.
// Ровно один ответ на пару (пользователь, вопрос): повторная попытка
// возвращает ErrConflict и не перезаписывает запись. Конкурентные ответы
// разных пользователей на один вопрос оба попадают в агрегацию.
func (s *SurveyService) SubmitAnswer(userID, questionID, optionID uint) error {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return err
	}

	if !question.HasOption(optionID) {
		return fmt.Errorf("%w: option #%d does not belong to question #%d",
			apperrors.ErrValidation, optionID, questionID)
	}

	answer := &entity.UserAnswer{
		UserID:         userID,
		QuestionID:     questionID,
		AnswerOptionID: optionID,
	}
	if err := s.answerRepo.Create(answer); err != nil {
		return err
	}

	// Ответ сразу виден агрегации: сбрасываем кеш и рассылаем свежую
	// статистику подписчикам live-результатов
	if s.statsService != nil {
		result, err := s.statsService.RefreshQuestionStats(questionID)
		if err != nil {
			log.Printf("[SurveyService] Не удалось обновить статистику вопроса #%d: %v", questionID, err)
		} else if s.broadcaster != nil {
			s.broadcaster.BroadcastQuestionStats(questionID, result)
		}
	}

	return nil
}

// GetQuestion возвращает вопрос с вариантами ответа
func (s *SurveyService) GetQuestion(id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// HasAnswered проверяет, отвечал ли пользователь на вопрос
func (s *SurveyService) HasAnswered(userID, questionID uint) (bool, error) {
	return s.answerRepo.HasAnswered(userID, questionID)
}

// GetWeekFeed возвращает сгруппированные вопросы модуля для недели даты date.
// Вопросы разбиваются относительно аффилиации зрителя.
func (s *SurveyService) GetWeekFeed(userID uint, module entity.Module, date time.Time) (*QuestionFeed, error) {
	if !module.IsValid() {
		return nil, fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, module)
	}

	weekStart := week.StartOf(date)
	questions, err := s.questionRepo.GetByModuleWeek(module, weekStart)
	if err != nil {
		return nil, err
	}

	feed, err := s.buildFeed(userID, module, questions)
	if err != nil {
		return nil, err
	}
	feed.WeekStart = weekStart.Format(week.ISOFormat)
	return feed, nil
}

// GetTimelessFeed возвращает сгруппированные вневременные вопросы модуля
func (s *SurveyService) GetTimelessFeed(userID uint, module entity.Module) (*QuestionFeed, error) {
	if !module.IsValid() {
		return nil, fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, module)
	}

	questions, err := s.questionRepo.GetTimeless(module)
	if err != nil {
		return nil, err
	}
	return s.buildFeed(userID, module, questions)
}

func (s *SurveyService) buildFeed(userID uint, module entity.Module, questions []entity.Question) (*QuestionFeed, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	names, err := s.catalog.EntityNames(module)
	if err != nil {
		return nil, err
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}
	answeredIDs, err := s.answerRepo.GetAnsweredQuestionIDs(userID, questionIDs)
	if err != nil {
		return nil, err
	}
	answered := make(map[uint]bool, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = true
	}

	var pendingMandatory []uint
	for _, q := range questions {
		if q.IsMandatory && !answered[q.ID] {
			pendingMandatory = append(pendingMandatory, q.ID)
		}
	}

	return &QuestionFeed{
		Grouped:             presenter.GroupQuestions(questions, module, user.AffiliationFor(module), names),
		AnsweredIDs:         answered,
		PendingMandatoryIDs: pendingMandatory,
	}, nil
}
