package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quorum-api/internal/domain/repository"
)

// StatsRepo реализует repository.StatsRepository
type StatsRepo struct {
	db *gorm.DB
}

// NewStatsRepo создает новый репозиторий статистики
func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// GetQuestionVotes возвращает все голоса по вопросу вместе с демографией
// респондентов. Сама агрегация выполняется чистой функцией в сервисном слое,
// чтобы семантику фильтров можно было тестировать без БД.
func (r *StatsRepo) GetQuestionVotes(questionID uint) ([]repository.VoteRow, error) {
	var rows []repository.VoteRow
	err := r.db.
		Table("user_answers").
		Select("user_answers.answer_option_id, users.party_id, users.team_id, users.gender, users.age").
		Joins("JOIN users ON users.id = user_answers.user_id").
		Where("user_answers.question_id = ?", questionID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
