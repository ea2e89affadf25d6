package entity

import (
	"time"
)

// UserAnswer представляет ответ пользователя на вопрос опроса.
// Инвариант: не более одной строки на пару (user_id, question_id),
// обеспечивается уникальным индексом в БД, а не блокировками в приложении.
type UserAnswer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_answers_user_question" json:"user_id"`
	QuestionID     uint      `gorm:"not null;uniqueIndex:idx_user_answers_user_question;index" json:"question_id"`
	AnswerOptionID uint      `gorm:"not null;index" json:"answer_option_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserAnswer) TableName() string {
	return "user_answers"
}
