package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// RoleRepo реализует repository.RoleRepository
type RoleRepo struct {
	db *gorm.DB
}

// NewRoleRepo создает новый репозиторий ролей
func NewRoleRepo(db *gorm.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

// Grant выдает роль пользователю. Уникальный индекс по user_id превращает
// повторную выдачу в ErrConflict.
func (r *RoleRepo) Grant(userID uint, role string) error {
	err := r.db.Create(&entity.UserRole{UserID: userID, Role: role}).Error
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user #%d already has a role", apperrors.ErrConflict, userID)
		}
		return err
	}
	return nil
}

// GetByUserID возвращает роль пользователя
func (r *RoleRepo) GetByUserID(userID uint) (*entity.UserRole, error) {
	var userRole entity.UserRole
	err := r.db.Where("user_id = ?", userID).First(&userRole).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &userRole, nil
}

// IsAdmin проверяет наличие роли admin у пользователя
func (r *RoleRepo) IsAdmin(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.UserRole{}).
		Where("user_id = ? AND role = ?", userID, entity.RoleAdmin).
		Count(&count).Error
	return count > 0, err
}

// CountAdmins возвращает количество администраторов
func (r *RoleRepo) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&entity.UserRole{}).
		Where("role = ?", entity.RoleAdmin).
		Count(&count).Error
	return count, err
}
