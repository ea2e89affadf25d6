package entity

import (
	"time"
)

// Comment представляет комментарий пользователя к вопросу.
// Удалить может автор или администратор. Reported помечает комментарий
// для модерации (по нему уходит уведомление администраторам).
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Text       string    `gorm:"size:1000;not null" json:"text"`
	Reported   bool      `gorm:"not null;default:false" json:"reported"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Comment) TableName() string {
	return "comments"
}

// CanBeDeletedBy проверяет, может ли пользователь удалить комментарий
func (c *Comment) CanBeDeletedBy(userID uint, isAdmin bool) bool {
	return isAdmin || c.UserID == userID
}
