package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
)

// PartyRepo реализует repository.PartyRepository
type PartyRepo struct {
	db *gorm.DB
}

// NewPartyRepo создает новый репозиторий партий
func NewPartyRepo(db *gorm.DB) *PartyRepo {
	return &PartyRepo{db: db}
}

// Create создает новую партию
func (r *PartyRepo) Create(party *entity.Party) error {
	err := r.db.Create(party).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: party %q already exists", apperrors.ErrConflict, party.Name)
	}
	return err
}

// GetByID возвращает партию по ID
func (r *PartyRepo) GetByID(id uint) (*entity.Party, error) {
	var party entity.Party
	err := r.db.First(&party, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &party, nil
}

// GetByName возвращает партию по имени
func (r *PartyRepo) GetByName(name string) (*entity.Party, error) {
	var party entity.Party
	err := r.db.Where("name = ?", name).First(&party).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &party, nil
}

// List возвращает все партии в порядке создания
func (r *PartyRepo) List() ([]entity.Party, error) {
	var parties []entity.Party
	err := r.db.Order("id").Find(&parties).Error
	return parties, err
}

// Delete удаляет партию. Ссылочная целостность обеспечивается БД:
// партию с вопросами или пользователями удалить нельзя.
func (r *PartyRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Party{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return fmt.Errorf("%w: party #%d is still referenced", apperrors.ErrConflict, id)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
