package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quorum-api/internal/domain/repository"
	"github.com/yourusername/quorum-api/internal/service/stats"
)

// statsCacheTTL - время жизни кешированной нефильтрованной статистики.
// Короткое: статистика и так инвалидируется при каждом новом ответе.
const statsCacheTTL = 60 * time.Second

// StatsService предоставляет агрегированную статистику по вопросам.
// Сама агрегация - чистая функция в пакете stats; сервис добавляет
// выборку данных и кеширование нефильтрованных результатов.
type StatsService struct {
	questionRepo repository.QuestionRepository
	statsRepo    repository.StatsRepository
	cacheRepo    repository.CacheRepository
}

// NewStatsService создает новый сервис статистики
func NewStatsService(
	questionRepo repository.QuestionRepository,
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
) *StatsService {
	return &StatsService{
		questionRepo: questionRepo,
		statsRepo:    statsRepo,
		cacheRepo:    cacheRepo,
	}
}

func statsCacheKey(questionID uint) string {
	return fmt.Sprintf("question:%d:stats", questionID)
}

// GetQuestionStats возвращает статистику вопроса с учетом фильтров.
// Нефильтрованный результат кешируется; фильтрованные запросы считаются
// каждый раз, комбинаций фильтров слишком много для кеша.
func (s *StatsService) GetQuestionStats(questionID uint, filter stats.Filter) (*stats.Result, error) {
	if filter.IsEmpty() && s.cacheRepo != nil {
		var cached stats.Result
		if err := s.cacheRepo.GetJSON(statsCacheKey(questionID), &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.computeStats(questionID, filter)
	if err != nil {
		return nil, err
	}

	if filter.IsEmpty() && s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(statsCacheKey(questionID), result, statsCacheTTL); err != nil {
			log.Printf("[StatsService] Не удалось закешировать статистику вопроса #%d: %v", questionID, err)
		}
	}
	return result, nil
}

// RefreshQuestionStats сбрасывает кеш и возвращает свежую нефильтрованную
// статистику. Вызывается после записи нового ответа.
func (s *StatsService) RefreshQuestionStats(questionID uint) (*stats.Result, error) {
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(statsCacheKey(questionID)); err != nil {
			log.Printf("[StatsService] Не удалось сбросить кеш статистики вопроса #%d: %v", questionID, err)
		}
	}
	return s.GetQuestionStats(questionID, stats.Filter{})
}

func (s *StatsService) computeStats(questionID uint, filter stats.Filter) (*stats.Result, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}

	votes, err := s.statsRepo.GetQuestionVotes(questionID)
	if err != nil {
		return nil, err
	}

	result := stats.Compute(questionID, question.Options, votes, filter)
	return &result, nil
}
