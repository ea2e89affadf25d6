package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quorum-api/internal/service"
)

// CatalogHandler обрабатывает публичные запросы каталога партий и команд
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListParties возвращает все партии (для формы регистрации и фильтров)
func (h *CatalogHandler) ListParties(c *gin.Context) {
	parties, err := h.catalogService.ListParties()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parties": parties})
}

// ListTeams возвращает все команды
func (h *CatalogHandler) ListTeams(c *gin.Context) {
	teams, err := h.catalogService.ListTeams()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}
