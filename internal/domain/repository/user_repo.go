package repository

import (
	"github.com/yourusername/quorum-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByPhone(phone string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error

	// DeleteCascade удаляет пользователя вместе со всеми его бизнес-данными
	// (ответы, комментарии, роль) в одной транзакции. Необратимо: либо
	// удаляется все, либо ничего.
	DeleteCascade(id uint) error
}
