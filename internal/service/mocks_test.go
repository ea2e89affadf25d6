package service

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/domain/repository"
)

// ============================================================================
// Общие моки репозиториев для тестов сервисов
// ============================================================================

// helper для создания pointer
func uintPtr(v uint) *uint { return &v }

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CreateWithOptions(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByModuleWeek(module entity.Module, weekStart time.Time) ([]entity.Question, error) {
	args := m.Called(module, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetTimeless(module entity.Module) ([]entity.Question, error) {
	args := m.Called(module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(limit, offset int) ([]entity.Question, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) DeleteCascade(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockUserAnswerRepository реализует repository.UserAnswerRepository
type MockUserAnswerRepository struct {
	mock.Mock
}

func (m *MockUserAnswerRepository) Create(answer *entity.UserAnswer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockUserAnswerRepository) GetAnsweredQuestionIDs(userID uint, questionIDs []uint) ([]uint, error) {
	args := m.Called(userID, questionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockUserAnswerRepository) HasAnswered(userID, questionID uint) (bool, error) {
	args := m.Called(userID, questionID)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(phone string) (*entity.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteCascade(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPartyRepository реализует repository.PartyRepository
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) Create(party *entity.Party) error {
	args := m.Called(party)
	return args.Error(0)
}

func (m *MockPartyRepository) GetByID(id uint) (*entity.Party, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Party), args.Error(1)
}

func (m *MockPartyRepository) GetByName(name string) (*entity.Party, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Party), args.Error(1)
}

func (m *MockPartyRepository) List() ([]entity.Party, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Party), args.Error(1)
}

func (m *MockPartyRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockTeamRepository реализует repository.TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(team *entity.Team) error {
	args := m.Called(team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(id uint) (*entity.Team, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByName(name string) (*entity.Team, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Team), args.Error(1)
}

func (m *MockTeamRepository) List() ([]entity.Team, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Team), args.Error(1)
}

func (m *MockTeamRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockRoleRepository реализует repository.RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Grant(userID uint, role string) error {
	args := m.Called(userID, role)
	return args.Error(0)
}

func (m *MockRoleRepository) GetByUserID(userID uint) (*entity.UserRole, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserRole), args.Error(1)
}

func (m *MockRoleRepository) IsAdmin(userID uint) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleRepository) CountAdmins() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository реализует repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id uint) (*entity.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByQuestionID(questionID uint, limit, offset int) ([]entity.Comment, int64, error) {
	args := m.Called(questionID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCommentRepository) MarkReported(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockStatsRepository реализует repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetQuestionVotes(questionID uint) ([]repository.VoteRow, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.VoteRow), args.Error(1)
}
