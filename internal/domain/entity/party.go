package entity

import "time"

// Party представляет политическую партию в каталоге сущностей.
// Имя - естественный ключ для статической таблицы приоритетов при группировке.
type Party struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Party) TableName() string {
	return "parties"
}
