package entity

import "time"

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserRole представляет назначенную пользователю роль.
// Отдельная таблица: роль проверяется по ней на каждый запрос и не
// кешируется дольше жизни сессии.
type UserRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserRole) TableName() string {
	return "user_roles"
}
