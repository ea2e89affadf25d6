package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// TeamRepo реализует repository.TeamRepository
type TeamRepo struct {
	db *gorm.DB
}

// NewTeamRepo создает новый репозиторий команд
func NewTeamRepo(db *gorm.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// Create создает новую команду
func (r *TeamRepo) Create(team *entity.Team) error {
	err := r.db.Create(team).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: team %q already exists", apperrors.ErrConflict, team.Name)
	}
	return err
}

// GetByID возвращает команду по ID
func (r *TeamRepo) GetByID(id uint) (*entity.Team, error) {
	var team entity.Team
	err := r.db.First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByName возвращает команду по имени
func (r *TeamRepo) GetByName(name string) (*entity.Team, error) {
	var team entity.Team
	err := r.db.Where("name = ?", name).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// List возвращает все команды в порядке создания
func (r *TeamRepo) List() ([]entity.Team, error) {
	var teams []entity.Team
	err := r.db.Order("id").Find(&teams).Error
	return teams, err
}

// Delete удаляет команду, если на нее никто не ссылается
func (r *TeamRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Team{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return fmt.Errorf("%w: team #%d is still referenced", apperrors.ErrConflict, id)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
