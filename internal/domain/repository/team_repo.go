package repository

import (
	"github.com/yourusername/quorum-api/internal/domain/entity"
)

// TeamRepository определяет методы для работы с каталогом команд
type TeamRepository interface {
	Create(team *entity.Team) error
	GetByID(id uint) (*entity.Team, error)
	GetByName(name string) (*entity.Team, error)
	List() ([]entity.Team, error)
	Delete(id uint) error
}
