package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/domain/repository"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// RoleService управляет ролями пользователей
type RoleService struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
}

// NewRoleService создает новый сервис ролей
func NewRoleService(roleRepo repository.RoleRepository, userRepo repository.UserRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
	}
}

// IsAdmin проверяет роль admin у пользователя. Вызывается на каждый
// админский запрос.
func (s *RoleService) IsAdmin(userID uint) (bool, error) {
	return s.roleRepo.IsAdmin(userID)
}

// PromoteToAdminByPhone выдает роль admin пользователю по номеру телефона
func (s *RoleService) PromoteToAdminByPhone(phone string) error {
	user, err := s.userRepo.GetByPhone(normalizePhone(phone))
	if err != nil {
		return err
	}

	if err := s.roleRepo.Grant(user.ID, entity.RoleAdmin); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: user #%d already has a role", apperrors.ErrConflict, user.ID)
		}
		return err
	}
	log.Printf("[RoleService] Роль admin выдана пользователю ID=%d (phone=%s)", user.ID, user.Phone)
	return nil
}

// BootstrapAdmin выдает роль admin пользователю с настроенным телефоном,
// если администраторов еще нет. Вызывается при старте приложения; отсутствие
// телефона или пользователя не фатально.
func (s *RoleService) BootstrapAdmin(bootstrapPhone string) error {
	if bootstrapPhone == "" {
		return nil
	}

	count, err := s.roleRepo.CountAdmins()
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	user, err := s.userRepo.GetByPhone(normalizePhone(bootstrapPhone))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[RoleService] Bootstrap-администратор %s еще не зарегистрирован, пропускаем", bootstrapPhone)
			return nil
		}
		return err
	}

	if err := s.roleRepo.Grant(user.ID, entity.RoleAdmin); err != nil {
		// Гонка при параллельном старте нескольких инстансов
		if errors.Is(err, apperrors.ErrConflict) {
			return nil
		}
		return err
	}
	log.Printf("[RoleService] Первый администратор назначен: ID=%d (phone=%s)", user.ID, user.Phone)
	return nil
}
