package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quorum-api/internal/websocket"
)

// WSHandler обрабатывает WebSocket-подключения live-статистики
type WSHandler struct {
	hub *websocket.Hub
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(hub *websocket.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
	}
}

// Subscribe подписывает клиента на live-статистику вопроса.
// Вопрос передается query-параметром question_id.
func (h *WSHandler) Subscribe(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	questionID, err := strconv.ParseUint(c.Query("question_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question_id"})
		return
	}

	if err := h.hub.ServeClient(c.Writer, c.Request, userID, uint(questionID)); err != nil {
		log.Printf("[WSHandler] Ошибка апгрейда соединения user=%d: %v", userID, err)
	}
}
