package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/service"
	"github.com/yourusername/quorum-api/internal/service/stats"
)

// AdminHandler обрабатывает запросы админ-панели: управление вопросами,
// каталогом, ролями, AI-генерация и экспорт статистики
type AdminHandler struct {
	questionService *service.QuestionService
	catalogService  *service.CatalogService
	statsService    *service.StatsService
	roleService     *service.RoleService
	aiGenerator     service.AIQuestionGenerator
}

// NewAdminHandler создает новый обработчик админ-панели
func NewAdminHandler(
	questionService *service.QuestionService,
	catalogService *service.CatalogService,
	statsService *service.StatsService,
	roleService *service.RoleService,
	aiGenerator service.AIQuestionGenerator,
) *AdminHandler {
	return &AdminHandler{
		questionService: questionService,
		catalogService:  catalogService,
		statsService:    statsService,
		roleService:     roleService,
		aiGenerator:     aiGenerator,
	}
}

// ============================================================================
// Вопросы
// ============================================================================

// OptionRequest представляет вариант ответа при создании вопроса
type OptionRequest struct {
	Text  string `json:"text" binding:"required,max=200"`
	Order int    `json:"order"`
}

// CreateQuestionRequest представляет запрос на создание вопроса
type CreateQuestionRequest struct {
	Text        string          `json:"text" binding:"required,min=3,max=500"`
	Module      string          `json:"module" binding:"required"`
	Scope       string          `json:"scope" binding:"required"`
	Date        *string         `json:"date"` // ISO-дата, любая дата недели
	EntityID    *uint           `json:"entity_id"`
	IsMandatory bool            `json:"is_mandatory"`
	Options     []OptionRequest `json:"options" binding:"required,min=2,dive"`
}

// CreateQuestion обрабатывает запрос на создание вопроса
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateQuestionInput{
		Text:        req.Text,
		Module:      entity.Module(req.Module),
		Scope:       entity.Scope(req.Scope),
		EntityID:    req.EntityID,
		IsMandatory: req.IsMandatory,
	}
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		input.Date = &parsed
	}
	for i, opt := range req.Options {
		order := opt.Order
		if order == 0 {
			order = i + 1
		}
		input.Options = append(input.Options, service.OptionInput{Text: opt.Text, Order: order})
	}

	question, err := h.questionService.CreateQuestion(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// ListQuestions возвращает вопросы с пагинацией
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	questions, total, err := h.questionService.ListQuestions(page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"total":     total,
		"page":      page,
	})
}

// DeleteQuestion удаляет вопрос каскадно
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)

	if err := h.questionService.DeleteQuestion(questionID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// ============================================================================
// Каталог
// ============================================================================

// CreateEntityRequest представляет запрос на создание партии или команды
type CreateEntityRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateParty создает новую партию
func (h *AdminHandler) CreateParty(c *gin.Context) {
	var req CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	party, err := h.catalogService.CreateParty(req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, party)
}

// DeleteParty удаляет партию. 409, если на нее есть ссылки.
func (h *AdminHandler) DeleteParty(c *gin.Context) {
	partyID := c.MustGet("entity_id").(uint)

	if err := h.catalogService.DeleteParty(partyID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Party deleted"})
}

// CreateTeam создает новую команду
func (h *AdminHandler) CreateTeam(c *gin.Context) {
	var req CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.catalogService.CreateTeam(req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// DeleteTeam удаляет команду
func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	teamID := c.MustGet("entity_id").(uint)

	if err := h.catalogService.DeleteTeam(teamID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}

// ============================================================================
// Роли
// ============================================================================

// PromoteAdminRequest представляет запрос на выдачу роли admin
type PromoteAdminRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// PromoteAdmin выдает роль admin пользователю по номеру телефона
func (h *AdminHandler) PromoteAdmin(c *gin.Context) {
	var req PromoteAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.roleService.PromoteToAdminByPhone(req.Phone); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin role granted"})
}

// ============================================================================
// AI-генерация
// ============================================================================

// GenerateQuestionRequest представляет запрос на AI-генерацию черновиков вопросов
type GenerateQuestionRequest struct {
	Topic    string   `json:"topic" binding:"required,max=200"`
	Module   string   `json:"module" binding:"required"`
	Mode     string   `json:"mode" binding:"required"`
	Entity   string   `json:"entity"`
	Entities []string `json:"entitiesList"`
}

// GenerateQuestion запрашивает у AI черновики вопросов. В режиме batch
// возвращается по черновику на каждую сущность из списка. Черновики не
// сохраняются: администратор просматривает и создает вопросы отдельно.
func (h *AdminHandler) GenerateQuestion(c *gin.Context) {
	var req GenerateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	generated, err := h.aiGenerator.GenerateQuestions(c.Request.Context(), service.GenerateQuestionInput{
		Topic:    req.Topic,
		Module:   entity.Module(req.Module),
		Mode:     req.Mode,
		Entity:   req.Entity,
		Entities: req.Entities,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": generated})
}

// ============================================================================
// Экспорт статистики
// ============================================================================

// ExportQuestionStats выгружает статистику вопроса в XLSX
func (h *AdminHandler) ExportQuestionStats(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)

	question, err := h.questionService.GetQuestion(questionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result, err := h.statsService.GetQuestionStats(questionID, stats.Filter{})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.exportXLSX(c, question, result, fmt.Sprintf("question_%d_stats", questionID))
}

// exportXLSX выгружает статистику в Excel с использованием StreamWriter
func (h *AdminHandler) exportXLSX(c *gin.Context, question *entity.Question, result *stats.Result, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Estadísticas"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Шапка с текстом вопроса и заголовки
	if err := sw.SetRow("A1", []interface{}{sanitizeForExcel(question.Text)}); err != nil {
		log.Printf("[AdminHandler] Ошибка записи шапки: %v", err)
	}
	headers := []interface{}{"Вариант", "Голосов", "Процент"}
	if err := sw.SetRow("A3", headers); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}

	for i, opt := range result.PerOption {
		cell := fmt.Sprintf("A%d", i+4)
		row := []interface{}{sanitizeForExcel(opt.Text), opt.Count, opt.Percentage}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", i+4, err)
		}
	}

	totalCell := fmt.Sprintf("A%d", len(result.PerOption)+5)
	if err := sw.SetRow(totalCell, []interface{}{"Всего", result.TotalVotes}); err != nil {
		log.Printf("[AdminHandler] Ошибка записи итога: %v", err)
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AdminHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
