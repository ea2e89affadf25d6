package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// ============================================================================
// Тесты для QuestionService
// ============================================================================

func validQuestionInput() CreateQuestionInput {
	return CreateQuestionInput{
		Text:   "¿Quién ganará la liga?",
		Module: entity.ModuleFootball,
		Scope:  entity.ScopeGeneral,
		Options: []OptionInput{
			{Text: "Real Madrid", Order: 1},
			{Text: "FC Barcelona", Order: 2},
		},
	}
}

func TestQuestionService_CreateQuestion_Success(t *testing.T) {
	// Arrange
	mockQuestionRepo := new(MockQuestionRepository)
	mockQuestionRepo.On("CreateWithOptions", mock.AnythingOfType("*entity.Question")).Return(nil)

	questionService := NewQuestionService(mockQuestionRepo, new(MockPartyRepository), new(MockTeamRepository))

	// Act
	question, err := questionService.CreateQuestion(validQuestionInput())

	// Assert
	require.NoError(t, err, "Создание вопроса должно быть успешным")
	assert.NotNil(t, question)
	assert.Len(t, question.Options, 2)
	mockQuestionRepo.AssertExpectations(t)
}

func TestQuestionService_CreateQuestion_SnapsDateToMonday(t *testing.T) {
	// Arrange
	mockQuestionRepo := new(MockQuestionRepository)
	mockQuestionRepo.On("CreateWithOptions", mock.AnythingOfType("*entity.Question")).Return(nil)

	questionService := NewQuestionService(mockQuestionRepo, new(MockPartyRepository), new(MockTeamRepository))

	input := validQuestionInput()
	// Пятница 2026-01-09 -> понедельник 2026-01-05
	friday := time.Date(2026, 1, 9, 18, 30, 0, 0, time.UTC)
	input.Date = &friday

	// Act
	question, err := questionService.CreateQuestion(input)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, question.WeekStartDate)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), *question.WeekStartDate,
		"Дата планирования должна привязываться к понедельнику")
}

func TestQuestionService_CreateQuestion_TooFewOptions(t *testing.T) {
	// Arrange
	questionService := NewQuestionService(new(MockQuestionRepository), new(MockPartyRepository), new(MockTeamRepository))

	input := validQuestionInput()
	input.Options = []OptionInput{{Text: "Sí", Order: 1}}

	// Act
	question, err := questionService.CreateQuestion(input)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Вопрос с одним вариантом должен быть отклонен")
	assert.Nil(t, question)
}

func TestQuestionService_CreateQuestion_SpecificRequiresEntity(t *testing.T) {
	// Arrange
	questionService := NewQuestionService(new(MockQuestionRepository), new(MockPartyRepository), new(MockTeamRepository))

	input := validQuestionInput()
	input.Scope = entity.ScopeSpecific
	input.EntityID = nil

	// Act
	_, err := questionService.CreateQuestion(input)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestQuestionService_CreateQuestion_SpecificDanglingEntity(t *testing.T) {
	// Arrange
	mockTeamRepo := new(MockTeamRepository)
	mockTeamRepo.On("GetByID", uint(42)).Return(nil, apperrors.ErrNotFound)

	questionService := NewQuestionService(new(MockQuestionRepository), new(MockPartyRepository), mockTeamRepo)

	input := validQuestionInput()
	input.Scope = entity.ScopeSpecific
	input.EntityID = uintPtr(42)

	// Act
	_, err := questionService.CreateQuestion(input)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Ссылка на несуществующую сущность должна быть отклонена")
}

func TestQuestionService_CreateQuestion_TimelessWithDate(t *testing.T) {
	// Arrange
	questionService := NewQuestionService(new(MockQuestionRepository), new(MockPartyRepository), new(MockTeamRepository))

	input := validQuestionInput()
	input.Scope = entity.ScopeTimeless
	now := time.Now()
	input.Date = &now

	// Act
	_, err := questionService.CreateQuestion(input)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Вневременной вопрос не может иметь недели")
}

func TestQuestionService_CreateQuestion_PoliticsEntityGoesToPartyID(t *testing.T) {
	// Arrange
	mockQuestionRepo := new(MockQuestionRepository)
	mockPartyRepo := new(MockPartyRepository)

	mockPartyRepo.On("GetByID", uint(7)).Return(&entity.Party{ID: 7, Name: "PSOE"}, nil)
	mockQuestionRepo.On("CreateWithOptions", mock.AnythingOfType("*entity.Question")).Return(nil)

	questionService := NewQuestionService(mockQuestionRepo, mockPartyRepo, new(MockTeamRepository))

	input := validQuestionInput()
	input.Module = entity.ModulePolitics
	input.Scope = entity.ScopeSpecific
	input.EntityID = uintPtr(7)

	// Act
	question, err := questionService.CreateQuestion(input)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, question.PartyID)
	assert.Equal(t, uint(7), *question.PartyID)
	assert.Nil(t, question.TeamID, "Для политики заполняется только PartyID")
}

func TestQuestionService_DeleteQuestion_Cascade(t *testing.T) {
	// Arrange
	mockQuestionRepo := new(MockQuestionRepository)
	mockQuestionRepo.On("DeleteCascade", uint(1)).Return(nil)

	questionService := NewQuestionService(mockQuestionRepo, new(MockPartyRepository), new(MockTeamRepository))

	// Act
	err := questionService.DeleteQuestion(1)

	// Assert
	require.NoError(t, err)
	mockQuestionRepo.AssertExpectations(t)
}

func TestQuestionService_ListQuestions_PaginationBounds(t *testing.T) {
	// Arrange
	mockQuestionRepo := new(MockQuestionRepository)
	// Отрицательная страница и завышенный размер нормализуются
	mockQuestionRepo.On("List", 100, 0).Return([]entity.Question{}, int64(0), nil)

	questionService := NewQuestionService(mockQuestionRepo, new(MockPartyRepository), new(MockTeamRepository))

	// Act
	_, _, err := questionService.ListQuestions(-1, 500)

	// Assert
	require.NoError(t, err)
	mockQuestionRepo.AssertExpectations(t)
}
