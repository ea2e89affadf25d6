package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quorum-api/internal/domain/repository"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
	"github.com/yourusername/quorum-api/internal/service/stats"
)

// ============================================================================
// Тесты для StatsService (без кеша; сама агрегация покрыта в пакете stats)
// ============================================================================

func TestStatsService_GetQuestionStats_Computes(t *testing.T) {
	// Arrange
	mockQuestionRepo := new(MockQuestionRepository)
	mockStatsRepo := new(MockStatsRepository)

	mockQuestionRepo.On("GetByID", uint(1)).Return(questionWithOptions(1), nil)
	mockStatsRepo.On("GetQuestionVotes", uint(1)).Return([]repository.VoteRow{
		{AnswerOptionID: 10, PartyID: 7, Gender: "female", Age: 30},
		{AnswerOptionID: 10, PartyID: 8, Gender: "male", Age: 41},
		{AnswerOptionID: 11, PartyID: 7, Gender: "male", Age: 25},
	}, nil)

	statsService := NewStatsService(mockQuestionRepo, mockStatsRepo, nil)

	// Act
	result, err := statsService.GetQuestionStats(1, stats.Filter{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalVotes)
	require.Len(t, result.PerOption, 2)
	assert.Equal(t, 2, result.PerOption[0].Count)
	assert.Equal(t, 67, result.PerOption[0].Percentage)
}

func TestStatsService_GetQuestionStats_WithFilter(t *testing.T) {
	// Arrange
	mockQuestionRepo := new(MockQuestionRepository)
	mockStatsRepo := new(MockStatsRepository)

	mockQuestionRepo.On("GetByID", uint(1)).Return(questionWithOptions(1), nil)
	mockStatsRepo.On("GetQuestionVotes", uint(1)).Return([]repository.VoteRow{
		{AnswerOptionID: 10, PartyID: 7, Gender: "female", Age: 30},
		{AnswerOptionID: 11, PartyID: 8, Gender: "male", Age: 41},
	}, nil)

	statsService := NewStatsService(mockQuestionRepo, mockStatsRepo, nil)

	// Act: только голоса партии 7
	result, err := statsService.GetQuestionStats(1, stats.Filter{PartyIDs: []uint{7}})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalVotes, "Фильтр должен отсечь голос другой партии")
}

func TestStatsService_GetQuestionStats_QuestionNotFound(t *testing.T) {
	// Arrange
	mockQuestionRepo := new(MockQuestionRepository)
	mockQuestionRepo.On("GetByID", uint(404)).Return(nil, apperrors.ErrNotFound)

	statsService := NewStatsService(mockQuestionRepo, new(MockStatsRepository), nil)

	// Act
	result, err := statsService.GetQuestionStats(404, stats.Filter{})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, result)
}
