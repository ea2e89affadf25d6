package entity

// AnswerOption представляет вариант ответа на вопрос.
// Принадлежит исключительно своему вопросу; Order задает порядок отображения
// и используется как порядок в результатах агрегации (не число голосов).
type AnswerOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:255;not null" json:"text"`
	Order      int    `gorm:"column:option_order;not null;default:0" json:"order"`
}

// TableName определяет имя таблицы для GORM
func (AnswerOption) TableName() string {
	return "answer_options"
}
