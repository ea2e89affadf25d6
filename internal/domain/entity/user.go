package entity

import (
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Gender - пол пользователя для демографических фильтров
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// SyntheticEmailDomain - домен синтетического email, на который отображается
// номер телефона во внутренней системе учетных данных.
const SyntheticEmailDomain = "phone.quorum.app"

// User представляет пользователя в системе.
// Регистрация идет по номеру телефона; телефон отображается на синтетический
// email для слоя учетных данных. Аффилиации по умолчанию указывают на
// сентинельные записи "Ninguno", чтобы агрегация не работала с NULL.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Phone    string `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Email    string `gorm:"size:100;not null;uniqueIndex" json:"-"`
	Username string `gorm:"size:50;not null" json:"username"`
	Password string `gorm:"size:100;not null" json:"-"`

	Gender string `gorm:"size:20;not null;default:''" json:"gender"` // male, female, other
	Age    int    `gorm:"not null;default:0" json:"age"`

	PartyID uint `gorm:"not null;index" json:"party_id"`
	TeamID  uint `gorm:"not null;index" json:"team_id"`

	AcceptedTerms   bool       `gorm:"not null;default:false" json:"accepted_terms"`
	AcceptedTermsAt *time.Time `gorm:"type:timestamp" json:"accepted_terms_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// SyntheticEmail формирует синтетический email из номера телефона
func SyntheticEmail(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return fmt.Sprintf("%s@%s", digits, SyntheticEmailDomain)
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для phone=%s: %v", u.Phone, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// AffiliationFor возвращает аффилиацию пользователя для заданного модуля
func (u *User) AffiliationFor(module Module) uint {
	if module == ModulePolitics {
		return u.PartyID
	}
	return u.TeamID
}
