package entity

import (
	"time"
)

// Module - вертикаль опроса: политика или футбол
type Module string

const (
	ModulePolitics Module = "politics"
	ModuleFootball Module = "football"
)

// IsValid проверяет, что значение модуля допустимо
func (m Module) IsValid() bool {
	return m == ModulePolitics || m == ModuleFootball
}

// Scope - область вопроса: общий, привязанный к сущности или вневременной
type Scope string

const (
	ScopeGeneral  Scope = "general"
	ScopeSpecific Scope = "specific"
	ScopeTimeless Scope = "timeless"
)

// IsValid проверяет, что значение области допустимо
func (s Scope) IsValid() bool {
	return s == ScopeGeneral || s == ScopeSpecific || s == ScopeTimeless
}

// Question представляет вопрос опроса.
// Текст вопроса неизменяем после создания: пути редактирования нет, только удаление.
type Question struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"size:500;not null" json:"text"`
	Module Module `gorm:"size:20;not null;index:idx_questions_module_week" json:"module"`
	Scope  Scope  `gorm:"size:20;not null" json:"scope"`

	// WeekStartDate - понедельник недели вопроса. NULL только для timeless.
	WeekStartDate *time.Time `gorm:"type:date;index:idx_questions_module_week" json:"week_start_date,omitempty"`

	// Ссылка на сущность. Обязательна при scope=specific: PartyID для политики,
	// TeamID для футбола.
	PartyID *uint `gorm:"index" json:"party_id,omitempty"`
	TeamID  *uint `gorm:"index" json:"team_id,omitempty"`

	IsMandatory bool `gorm:"not null;default:false" json:"is_mandatory"`

	// Варианты ответа создаются атомарно вместе с вопросом
	Options []AnswerOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsTimeless возвращает true для вневременных вопросов (без недели)
func (q *Question) IsTimeless() bool {
	return q.Scope == ScopeTimeless
}

// EntityRef возвращает ссылку на сущность вопроса с учетом модуля
func (q *Question) EntityRef() *uint {
	if q.Module == ModulePolitics {
		return q.PartyID
	}
	return q.TeamID
}

// HasOption проверяет, принадлежит ли вариант ответа этому вопросу
func (q *Question) HasOption(optionID uint) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
