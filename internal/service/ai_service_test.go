package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quorum-api/internal/config"
	"github.com/yourusername/quorum-api/internal/domain/entity"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// ============================================================================
// Тесты для AI-генерации вопросов
// ============================================================================

func createTestAIGenerator(t *testing.T, handler http.HandlerFunc) *HTTPAIGenerator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	generator, err := NewHTTPAIGenerator(config.AIConfig{
		Endpoint: server.URL,
		APIKey:   "test-key",
		Model:    "test-model",
	})
	require.NoError(t, err)
	return generator
}

func validGenerateInput() GenerateQuestionInput {
	return GenerateQuestionInput{
		Topic:  "presupuestos",
		Module: entity.ModulePolitics,
		Mode:   GenerateModeSingle,
	}
}

func TestHTTPAIGenerator_GenerateQuestions_SingleSuccess(t *testing.T) {
	// Arrange: провайдер отвечает конвертом results с одним черновиком
	generator := createTestAIGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "single", req["mode"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"question":"¿Apoya los presupuestos?","options":["Sí","No","No sé","Me da igual"]}]}`))
	})

	// Act
	generated, err := generator.GenerateQuestions(context.Background(), validGenerateInput())

	// Assert
	require.NoError(t, err)
	require.Len(t, generated, 1)
	assert.Equal(t, "¿Apoya los presupuestos?", generated[0].Text)
	assert.Len(t, generated[0].Options, GeneratedOptionsCount)
}

func TestHTTPAIGenerator_GenerateQuestions_BatchPerEntity(t *testing.T) {
	// Arrange: batch - по черновику на каждую сущность, с target_entity
	generator := createTestAIGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "batch", req["mode"])
		assert.Len(t, req["entitiesList"], 2)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"question":"¿Valora al PSOE?","options":["1","2","3","4"],"target_entity":"PSOE"},
			{"question":"¿Valora al PP?","options":["1","2","3","4"],"target_entity":"PP"}
		]}`))
	})

	input := validGenerateInput()
	input.Mode = GenerateModeBatch
	input.Entities = []string{"PSOE", "PP"}

	// Act
	generated, err := generator.GenerateQuestions(context.Background(), input)

	// Assert
	require.NoError(t, err)
	require.Len(t, generated, 2)
	assert.Equal(t, "PSOE", generated[0].TargetEntity)
	assert.Equal(t, "PP", generated[1].TargetEntity)
}

func TestHTTPAIGenerator_GenerateQuestions_WrongOptionCount(t *testing.T) {
	// Arrange: один из черновиков пришел с тремя вариантами вместо четырех
	generator := createTestAIGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"question":"¿Apoya?","options":["Sí","No","No sé"]}]}`))
	})

	// Act
	generated, err := generator.GenerateQuestions(context.Background(), validGenerateInput())

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUpstream, "Неполный набор вариантов - сбой провайдера")
	assert.Nil(t, generated)
}

func TestHTTPAIGenerator_GenerateQuestions_EmptyQuestion(t *testing.T) {
	// Arrange
	generator := createTestAIGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"question":"  ","options":["A","B","C","D"]}]}`))
	})

	// Act
	_, err := generator.GenerateQuestions(context.Background(), validGenerateInput())

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestHTTPAIGenerator_GenerateQuestions_EmptyResults(t *testing.T) {
	// Arrange: конверт есть, черновиков нет
	generator := createTestAIGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})

	// Act
	_, err := generator.GenerateQuestions(context.Background(), validGenerateInput())

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestHTTPAIGenerator_GenerateQuestions_UpstreamError(t *testing.T) {
	// Arrange
	generator := createTestAIGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	// Act
	_, err := generator.GenerateQuestions(context.Background(), validGenerateInput())

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestHTTPAIGenerator_GenerateQuestions_UnknownMode(t *testing.T) {
	// Arrange
	generator := createTestAIGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("эндпоинт не должен вызываться при невалидном входе")
	})

	input := validGenerateInput()
	input.Mode = "specific"

	// Act
	_, err := generator.GenerateQuestions(context.Background(), input)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestHTTPAIGenerator_GenerateQuestions_BatchRequiresEntities(t *testing.T) {
	// Arrange
	generator := createTestAIGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("эндпоинт не должен вызываться при невалидном входе")
	})

	input := validGenerateInput()
	input.Mode = GenerateModeBatch
	input.Entities = nil

	// Act
	_, err := generator.GenerateQuestions(context.Background(), input)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewHTTPAIGenerator_MissingConfig(t *testing.T) {
	// Act
	generator, err := NewHTTPAIGenerator(config.AIConfig{})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConfig)
	assert.Nil(t, generator)
}

func TestNoopAIGenerator_ReturnsConfigError(t *testing.T) {
	// Arrange
	generator := &NoopAIGenerator{}

	// Act
	_, err := generator.GenerateQuestions(context.Background(), validGenerateInput())

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConfig, "Ненастроенная фича отдает ErrConfig, а не падает")
}
