package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quorum-api/internal/service"
)

// CommentHandler обрабатывает запросы комментариев к вопросам
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler создает новый обработчик комментариев
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// AddCommentRequest представляет запрос на добавление комментария
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

// AddComment добавляет комментарий к вопросу
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	questionID := c.MustGet("question_id").(uint)

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.AddComment(userID, questionID, req.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListComments возвращает комментарии вопроса с пагинацией
func (h *CommentHandler) ListComments(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	comments, total, err := h.commentService.ListComments(questionID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
	})
}

// DeleteComment удаляет комментарий (автор или администратор)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	commentID := c.MustGet("comment_id").(uint)

	if err := h.commentService.DeleteComment(userID, commentID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// ReportComment помечает комментарий для модерации
func (h *CommentHandler) ReportComment(c *gin.Context) {
	commentID := c.MustGet("comment_id").(uint)

	if err := h.commentService.ReportComment(c.Request.Context(), commentID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment reported"})
}
