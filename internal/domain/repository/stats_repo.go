package repository

// VoteRow - один голос с демографией респондента. Выборка строится
// соединением user_answers с users и служит входом чистой функции агрегации.
type VoteRow struct {
	AnswerOptionID uint
	PartyID        uint
	TeamID         uint
	Gender         string
	Age            int
}

// StatsRepository определяет выборку голосов для движка агрегации
type StatsRepository interface {
	// GetQuestionVotes возвращает все голоса по вопросу вместе с демографией.
	// Пустой результат - нормальное состояние свежего вопроса, не ошибка.
	GetQuestionVotes(questionID uint) ([]VoteRow, error)
}
