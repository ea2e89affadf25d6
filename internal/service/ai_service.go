package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/quorum-api/internal/config"
	"github.com/yourusername/quorum-api/internal/domain/entity"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// GeneratedOptionsCount - сколько вариантов ответа должен иметь каждый черновик
const GeneratedOptionsCount = 4

// Режимы генерации: один черновик по теме или пакет черновиков,
// по одному на каждую сущность из списка
const (
	GenerateModeSingle = "single"
	GenerateModeBatch  = "batch"
)

// GenerateQuestionInput - параметры AI-генерации черновиков вопросов
type GenerateQuestionInput struct {
	Topic    string
	Module   entity.Module
	Mode     string   // single | batch
	Entity   string   // имя сущности для mode=single
	Entities []string // список сущностей для mode=batch
}

// GeneratedQuestion - черновик вопроса от AI. Не сохраняется автоматически:
// администратор просматривает и создает вопрос отдельным запросом.
type GeneratedQuestion struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	TargetEntity string   `json:"target_entity,omitempty"`
}

// AIQuestionGenerator генерирует черновики вопросов через внешний AI-эндпоинт
type AIQuestionGenerator interface {
	GenerateQuestions(ctx context.Context, input GenerateQuestionInput) ([]GeneratedQuestion, error)
}

// NoopAIGenerator используется, когда AI-эндпоинт не настроен
type NoopAIGenerator struct{}

func (g *NoopAIGenerator) GenerateQuestions(ctx context.Context, input GenerateQuestionInput) ([]GeneratedQuestion, error) {
	return nil, fmt.Errorf("%w: AI endpoint is not configured", apperrors.ErrConfig)
}

// HTTPAIGenerator вызывает настроенный AI-эндпоинт по HTTP.
// Сбой или невалидный ответ - ErrUpstream, без повторных попыток:
// администратор просто нажимает "сгенерировать" еще раз.
type HTTPAIGenerator struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewHTTPAIGenerator создает генератор из конфигурации
func NewHTTPAIGenerator(cfg config.AIConfig) (*HTTPAIGenerator, error) {
	if cfg.Endpoint == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: AI endpoint or api key is missing", apperrors.ErrConfig)
	}
	return &HTTPAIGenerator{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type aiRequest struct {
	Topic        string   `json:"topic"`
	Module       string   `json:"module"`
	Model        string   `json:"model,omitempty"`
	Mode         string   `json:"mode"`
	Entity       string   `json:"entity,omitempty"`
	EntitiesList []string `json:"entitiesList,omitempty"`
}

type aiResponse struct {
	Results []GeneratedQuestion `json:"results"`
}

// GenerateQuestions запрашивает у AI-эндпоинта черновики вопросов.
// В режиме single возвращается один черновик по теме, в режиме batch -
// по черновику на каждую сущность из списка (target_entity в ответе).
func (g *HTTPAIGenerator) GenerateQuestions(ctx context.Context, input GenerateQuestionInput) ([]GeneratedQuestion, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", apperrors.ErrValidation)
	}
	if !input.Module.IsValid() {
		return nil, fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, input.Module)
	}
	switch input.Mode {
	case GenerateModeSingle:
		// Сущность опциональна: single без нее - общий вопрос по теме
	case GenerateModeBatch:
		if len(input.Entities) == 0 {
			return nil, fmt.Errorf("%w: batch mode requires a non-empty entities list", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: mode must be single or batch", apperrors.ErrValidation)
	}

	payload, err := json.Marshal(aiRequest{
		Topic:        strings.TrimSpace(input.Topic),
		Module:       string(input.Module),
		Model:        g.model,
		Mode:         input.Mode,
		Entity:       strings.TrimSpace(input.Entity),
		EntitiesList: input.Entities,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal AI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: AI request failed: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading AI response: %v", apperrors.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: AI endpoint returned status %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	var parsed aiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: AI response is not valid JSON: %v", apperrors.ErrUpstream, err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("%w: AI returned no results", apperrors.ErrUpstream)
	}
	for i := range parsed.Results {
		if err := validateGenerated(&parsed.Results[i]); err != nil {
			return nil, err
		}
	}
	return parsed.Results, nil
}

// validateGenerated проверяет структуру черновика: непустой текст вопроса
// и ровно четыре непустых варианта ответа
func validateGenerated(g *GeneratedQuestion) error {
	g.Text = strings.TrimSpace(g.Text)
	if g.Text == "" {
		return fmt.Errorf("%w: AI returned an empty question", apperrors.ErrUpstream)
	}
	if len(g.Options) != GeneratedOptionsCount {
		return fmt.Errorf("%w: AI returned %d options, expected %d", apperrors.ErrUpstream, len(g.Options), GeneratedOptionsCount)
	}
	for i, opt := range g.Options {
		g.Options[i] = strings.TrimSpace(opt)
		if g.Options[i] == "" {
			return fmt.Errorf("%w: AI returned an empty answer option", apperrors.ErrUpstream)
		}
	}
	return nil
}
