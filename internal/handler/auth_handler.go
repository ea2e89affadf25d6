package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quorum-api/internal/handler/dto"
	"github.com/yourusername/quorum-api/internal/service"
)

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	authService *service.AuthService
	verifier    service.PhoneVerifier
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, verifier service.PhoneVerifier) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		verifier:    verifier,
	}
}

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Phone         string `json:"phone" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Username      string `json:"username" binding:"required,max=50"`
	Gender        string `json:"gender" binding:"omitempty"`
	Age           int    `json:"age" binding:"omitempty,min=0,max=120"`
	PartyID       *uint  `json:"party_id"`
	TeamID        *uint  `json:"team_id"`
	AcceptedTerms bool   `json:"accepted_terms"`
}

// Register обрабатывает запрос на регистрацию нового пользователя
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(service.RegisterInput{
		Phone:         req.Phone,
		Password:      req.Password,
		Username:      req.Username,
		Gender:        req.Gender,
		Age:           req.Age,
		PartyID:       req.PartyID,
		TeamID:        req.TeamID,
		AcceptedTerms: req.AcceptedTerms,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{User: dto.NewUserResponse(user)})
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login обрабатывает запрос на вход по телефону и паролю.
// Токен возвращается в теле и дублируется в HttpOnly куке.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Login(req.Phone, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", token, 0, "/", "", true, true)

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:        dto.NewUserResponse(user),
		AccessToken: token,
	})
}

// Logout сбрасывает куку access-токена
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// VerifyPhoneRequest представляет запрос на отправку кода подтверждения
type VerifyPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// StartPhoneVerification запрашивает отправку SMS-кода на номер
func (h *AuthHandler) StartPhoneVerification(c *gin.Context) {
	var req VerifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.verifier.StartVerification(c.Request.Context(), req.Phone); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// CheckPhoneRequest представляет запрос на проверку кода подтверждения
type CheckPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// CheckPhoneVerification проверяет введенный пользователем код
func (h *AuthHandler) CheckPhoneVerification(c *gin.Context) {
	var req CheckPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.verifier.CheckVerification(c.Request.Context(), req.Phone, req.Code); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Phone verified"})
}
