package repository

import (
	"github.com/yourusername/quorum-api/internal/domain/entity"
)

// RoleRepository определяет методы для работы с ролями пользователей
type RoleRepository interface {
	// Grant выдает роль пользователю. Повторная выдача возвращает ErrConflict.
	Grant(userID uint, role string) error

	// GetByUserID возвращает роль пользователя (ErrNotFound, если роли нет)
	GetByUserID(userID uint) (*entity.UserRole, error)

	// IsAdmin проверяет наличие роли admin. Проверяется на каждый запрос,
	// без кеширования.
	IsAdmin(userID uint) (bool, error)

	// CountAdmins возвращает количество администраторов (для bootstrap)
	CountAdmins() (int64, error)
}
