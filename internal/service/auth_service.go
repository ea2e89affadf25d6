package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/domain/repository"
	apperrors "github.com/yourusername/quorum-api/internal/pkg/errors"
	"github.com/yourusername/quorum-api/pkg/auth"
)

// MinPasswordLength - минимальная длина пароля при регистрации
const MinPasswordLength = 6

// RegisterInput - данные регистрации нового пользователя
type RegisterInput struct {
	Phone         string
	Password      string
	Username      string
	Gender        string
	Age           int
	PartyID       *uint // nil -> сентинел "Ninguno"
	TeamID        *uint // nil -> сентинел "Ninguno"
	AcceptedTerms bool
}

// UpdateProfileInput - изменяемые поля профиля. nil означает "не менять".
type UpdateProfileInput struct {
	Username *string
	Gender   *string
	Age      *int
	PartyID  *uint
	TeamID   *uint
}

// AuthService предоставляет регистрацию, вход и управление профилем
type AuthService struct {
	userRepo   repository.UserRepository
	catalog    *CatalogService
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	catalog *CatalogService,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		catalog:    catalog,
		jwtService: jwtService,
	}
}

// Register создает нового пользователя по номеру телефона.
// Телефон отображается на синтетический email для слоя учетных данных;
// невыбранные аффилиации указывают на сентинельные записи "Ninguno".
func (s *AuthService) Register(input RegisterInput) (*entity.User, error) {
	phone := normalizePhone(input.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", apperrors.ErrValidation)
	}
	if len(input.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, MinPasswordLength)
	}
	if strings.TrimSpace(input.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if !input.AcceptedTerms {
		return nil, fmt.Errorf("%w: terms must be accepted", apperrors.ErrValidation)
	}
	if input.Gender != "" && input.Gender != entity.GenderMale &&
		input.Gender != entity.GenderFemale && input.Gender != entity.GenderOther {
		return nil, fmt.Errorf("%w: unknown gender %q", apperrors.ErrValidation, input.Gender)
	}
	if input.Age < 0 {
		return nil, fmt.Errorf("%w: age cannot be negative", apperrors.ErrValidation)
	}

	partyID, teamID, err := s.resolveAffiliations(input.PartyID, input.TeamID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Phone:           phone,
		Email:           entity.SyntheticEmail(phone),
		Username:        strings.TrimSpace(input.Username),
		Password:        input.Password, // хешируется в BeforeSave
		Gender:          input.Gender,
		Age:             input.Age,
		PartyID:         partyID,
		TeamID:          teamID,
		AcceptedTerms:   true,
		AcceptedTermsAt: &now,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: phone is already registered", apperrors.ErrConflict)
		}
		return nil, err
	}

	log.Printf("[AuthService] Зарегистрирован пользователь: ID=%d, phone=%s", user.ID, user.Phone)
	return user, nil
}

// Login проверяет телефон и пароль и выпускает access-токен
func (s *AuthService) Login(phone, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByPhone(normalizePhone(phone))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, существует ли номер
			return nil, "", fmt.Errorf("%w: invalid phone or password", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Неверный пароль для phone=%s", user.Phone)
		return nil, "", fmt.Errorf("%w: invalid phone or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Phone)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetMe возвращает профиль текущего пользователя
func (s *AuthService) GetMe(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile изменяет переданные поля профиля.
// Телефон и пароль этим путем не меняются.
func (s *AuthService) UpdateProfile(userID uint, input UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidation)
		}
		user.Username = username
	}
	if input.Gender != nil {
		if *input.Gender != entity.GenderMale && *input.Gender != entity.GenderFemale &&
			*input.Gender != entity.GenderOther {
			return nil, fmt.Errorf("%w: unknown gender %q", apperrors.ErrValidation, *input.Gender)
		}
		user.Gender = *input.Gender
	}
	if input.Age != nil {
		if *input.Age < 0 {
			return nil, fmt.Errorf("%w: age cannot be negative", apperrors.ErrValidation)
		}
		user.Age = *input.Age
	}
	if input.PartyID != nil {
		if _, err := s.catalog.partyRepo.GetByID(*input.PartyID); err != nil {
			return nil, fmt.Errorf("%w: party #%d does not exist", apperrors.ErrValidation, *input.PartyID)
		}
		user.PartyID = *input.PartyID
	}
	if input.TeamID != nil {
		if _, err := s.catalog.teamRepo.GetByID(*input.TeamID); err != nil {
			return nil, fmt.Errorf("%w: team #%d does not exist", apperrors.ErrValidation, *input.TeamID)
		}
		user.TeamID = *input.TeamID
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount удаляет аккаунт вместе с ответами, комментариями и ролью.
// Необратимо; пароль запрашивается повторно как подтверждение.
func (s *AuthService) DeleteAccount(userID uint, password string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(password) {
		return fmt.Errorf("%w: password confirmation failed", apperrors.ErrUnauthorized)
	}

	if err := s.userRepo.DeleteCascade(userID); err != nil {
		return err
	}
	log.Printf("[AuthService] Аккаунт удален: ID=%d, phone=%s", userID, user.Phone)
	return nil
}

// resolveAffiliations подставляет сентинел "Ninguno" вместо отсутствующих
// аффилиаций и проверяет существование переданных
func (s *AuthService) resolveAffiliations(partyID, teamID *uint) (uint, uint, error) {
	var resolvedParty, resolvedTeam uint

	if partyID != nil {
		if _, err := s.catalog.partyRepo.GetByID(*partyID); err != nil {
			return 0, 0, fmt.Errorf("%w: party #%d does not exist", apperrors.ErrValidation, *partyID)
		}
		resolvedParty = *partyID
	} else {
		sentinel, err := s.catalog.SentinelParty()
		if err != nil {
			return 0, 0, fmt.Errorf("sentinel party lookup: %w", err)
		}
		resolvedParty = sentinel.ID
	}

	if teamID != nil {
		if _, err := s.catalog.teamRepo.GetByID(*teamID); err != nil {
			return 0, 0, fmt.Errorf("%w: team #%d does not exist", apperrors.ErrValidation, *teamID)
		}
		resolvedTeam = *teamID
	} else {
		sentinel, err := s.catalog.SentinelTeam()
		if err != nil {
			return 0, 0, fmt.Errorf("sentinel team lookup: %w", err)
		}
		resolvedTeam = sentinel.ID
	}

	return resolvedParty, resolvedTeam, nil
}

// normalizePhone убирает пробелы и дефисы из номера, сохраняя ведущий "+"
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
