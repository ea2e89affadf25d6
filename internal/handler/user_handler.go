package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quorum-api/internal/handler/dto"
	"github.com/yourusername/quorum-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с профилем пользователя
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// GetMe возвращает профиль текущего пользователя
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	user, err := h.authService.GetMe(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateProfileRequest представляет запрос на изменение профиля.
// Отсутствующие поля не меняются.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Gender   *string `json:"gender"`
	Age      *int    `json:"age"`
	PartyID  *uint   `json:"party_id"`
	TeamID   *uint   `json:"team_id"`
}

// UpdateProfile обрабатывает запрос на изменение профиля
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(userID, service.UpdateProfileInput{
		Username: req.Username,
		Gender:   req.Gender,
		Age:      req.Age,
		PartyID:  req.PartyID,
		TeamID:   req.TeamID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DeleteAccountRequest представляет запрос на удаление аккаунта
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// DeleteAccount удаляет аккаунт текущего пользователя со всеми его данными
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.DeleteAccount(userID, req.Password); err != nil {
		handleServiceError(c, err)
		return
	}

	c.SetCookie("access_token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
