package entity

import "time"

// Team представляет футбольную команду в каталоге сущностей.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Team) TableName() string {
	return "teams"
}
