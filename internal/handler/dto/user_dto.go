package dto

import (
	"time"

	"github.com/yourusername/quorum-api/internal/domain/entity"
)

// UserResponse - профиль пользователя для фронтенда
type UserResponse struct {
	ID        uint      `json:"id"`
	Phone     string    `json:"phone"`
	Username  string    `json:"username"`
	Gender    string    `json:"gender,omitempty"`
	Age       int       `json:"age,omitempty"`
	PartyID   uint      `json:"party_id"`
	TeamID    uint      `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse преобразует entity.User в ответ API
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Phone:     user.Phone,
		Username:  user.Username,
		Gender:    user.Gender,
		Age:       user.Age,
		PartyID:   user.PartyID,
		TeamID:    user.TeamID,
		CreatedAt: user.CreatedAt,
	}
}

// AuthResponse - ответ на успешный вход или регистрацию
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token,omitempty"`
}
