package middleware

import (
	"net/http"
	"strings"

	"log"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quorum-api/internal/domain/repository"
	"github.com/yourusername/quorum-api/pkg/auth"
)

// Имя куки с access-токеном
const accessTokenCookie = "access_token"

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	jwtService *auth.JWTService
	roleRepo   repository.RoleRepository
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(jwtService *auth.JWTService, roleRepo repository.RoleRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		roleRepo:   roleRepo,
	}
}

// RequireAuth проверяет, аутентифицирован ли пользователь.
// Токен берется из куки access_token или заголовка Authorization: Bearer.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromRequest(c)
		if err != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err, "error_type": "token_missing"})
			c.Abort()
			return
		}

		claims, parseErr := m.jwtService.ParseToken(token)
		if parseErr != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "token_invalid"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("phone", claims.Phone)
		c.Next()
	}
}

// AdminOnly проверяет роль admin по таблице ролей на каждый запрос.
// Роль не кладется в JWT: отзыв роли действует немедленно, не после
// истечения токена. Должен применяться ПОСЛЕ RequireAuth.
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		isAdmin, err := m.roleRepo.IsAdmin(userID.(uint))
		if err != nil {
			log.Printf("[AuthMiddleware] Ошибка проверки роли user=%d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Role check failed"})
			c.Abort()
			return
		}
		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin rights required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// tokenFromRequest извлекает access-токен из куки или заголовка.
// Возвращает токен и текст ошибки (пустой при успехе).
func tokenFromRequest(c *gin.Context) (string, string) {
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie != "" {
		return cookie, ""
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authorization required"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "Authorization header format must be Bearer {token}"
	}
	return parts[1], ""
}
