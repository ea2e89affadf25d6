package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/handler/dto"
	"github.com/yourusername/quorum-api/internal/handler/helper"
	"github.com/yourusername/quorum-api/internal/pkg/week"
	"github.com/yourusername/quorum-api/internal/service"
	"github.com/yourusername/quorum-api/internal/service/stats"
)

// SurveyHandler обрабатывает запросы лент вопросов, ответов и статистики
type SurveyHandler struct {
	surveyService *service.SurveyService
	statsService  *service.StatsService
}

// NewSurveyHandler создает новый обработчик опросов
func NewSurveyHandler(surveyService *service.SurveyService, statsService *service.StatsService) *SurveyHandler {
	return &SurveyHandler{
		surveyService: surveyService,
		statsService:  statsService,
	}
}

// GetWeekFeed возвращает вопросы модуля для недели.
// Параметр date (ISO-дата) опционален, по умолчанию текущая неделя.
func (h *SurveyHandler) GetWeekFeed(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	module := c.MustGet("module").(entity.Module)

	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := week.ParseISO(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	feed, err := h.surveyService.GetWeekFeed(userID, module, date)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFeedResponse(feed))
}

// GetTimelessFeed возвращает вневременные вопросы модуля
func (h *SurveyHandler) GetTimelessFeed(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	module := c.MustGet("module").(entity.Module)

	feed, err := h.surveyService.GetTimelessFeed(userID, module)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFeedResponse(feed))
}

// GetQuestion возвращает вопрос с вариантами ответа
func (h *SurveyHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)

	question, err := h.surveyService.GetQuestion(questionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// SubmitAnswerRequest представляет запрос на ответ на вопрос
type SubmitAnswerRequest struct {
	AnswerOptionID uint `json:"answer_option_id" binding:"required"`
}

// SubmitAnswer записывает ответ пользователя на вопрос.
// Повторный ответ возвращает 409.
func (h *SurveyHandler) SubmitAnswer(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	questionID := c.MustGet("question_id").(uint)

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.surveyService.SubmitAnswer(userID, questionID, req.AnswerOptionID); err != nil {
		handleServiceError(c, err)
		return
	}

	// Сразу отдаем свежую статистику: фронт показывает результаты после ответа
	result, err := h.statsService.GetQuestionStats(questionID, stats.Filter{})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetQuestionStats возвращает агрегированную статистику вопроса.
// Демографические фильтры передаются query-параметрами.
func (h *SurveyHandler) GetQuestionStats(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)

	filter, err := helper.ParseStatsFilter(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.statsService.GetQuestionStats(questionID, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
