package repository

import (
	"github.com/yourusername/quorum-api/internal/domain/entity"
)

// PartyRepository определяет методы для работы с каталогом партий
type PartyRepository interface {
	Create(party *entity.Party) error
	GetByID(id uint) (*entity.Party, error)
	GetByName(name string) (*entity.Party, error)
	List() ([]entity.Party, error)
	// Delete удаляет партию. Если на нее ссылаются вопросы или пользователи,
	// БД вернет ошибку внешнего ключа, которую репозиторий отображает в ErrConflict.
	Delete(id uint) error
}
