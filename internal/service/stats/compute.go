package stats

import (
	"math"
	"sort"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/domain/repository"
)

// Движок агрегации. Считает голоса и проценты по вариантам ответа с
// демографическими фильтрами. Реализован как чистая функция над явной
// таблицей голосов, чтобы семантика фильтров была тестируемой без БД.

// AgeRange - возрастной диапазон [Min, Max]. Max == nil означает "и старше".
type AgeRange struct {
	Min int  `json:"min"`
	Max *int `json:"max,omitempty"`
}

// Contains проверяет попадание возраста в диапазон
func (r AgeRange) Contains(age int) bool {
	if age < r.Min {
		return false
	}
	return r.Max == nil || age <= *r.Max
}

// Filter - демографические фильтры агрегации.
// Внутри каждого поля значения объединяются по ИЛИ, поля между собой - по И.
// Пустое поле означает "без фильтра".
type Filter struct {
	PartyIDs  []uint     `json:"party_ids,omitempty"`
	TeamIDs   []uint     `json:"team_ids,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	AgeRanges []AgeRange `json:"age_ranges,omitempty"`
}

// IsEmpty возвращает true, если ни один фильтр не задан
func (f Filter) IsEmpty() bool {
	return len(f.PartyIDs) == 0 && len(f.TeamIDs) == 0 && f.Gender == "" && len(f.AgeRanges) == 0
}

// Matches проверяет, проходит ли респондент все заданные фильтры
func (f Filter) Matches(v repository.VoteRow) bool {
	if len(f.PartyIDs) > 0 && !containsID(f.PartyIDs, v.PartyID) {
		return false
	}
	if len(f.TeamIDs) > 0 && !containsID(f.TeamIDs, v.TeamID) {
		return false
	}
	if f.Gender != "" && v.Gender != f.Gender {
		return false
	}
	if len(f.AgeRanges) > 0 {
		inRange := false
		for _, r := range f.AgeRanges {
			if r.Contains(v.Age) {
				inRange = true
				break
			}
		}
		if !inRange {
			return false
		}
	}
	return true
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// OptionStat - агрегат по одному варианту ответа
type OptionStat struct {
	OptionID   uint   `json:"option_id"`
	Text       string `json:"text"`
	Order      int    `json:"order"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Result - агрегат по вопросу
type Result struct {
	QuestionID uint         `json:"question_id"`
	TotalVotes int          `json:"total_votes"`
	PerOption  []OptionStat `json:"per_option"`
}

// Compute агрегирует голоса по вариантам ответа с учетом фильтров.
// Ноль голосов - нормальное состояние свежего вопроса: все счетчики и
// проценты нулевые, деления на ноль нет. Варианты в результате упорядочены
// по полю Order, не по числу голосов.
func Compute(questionID uint, options []entity.AnswerOption, votes []repository.VoteRow, f Filter) Result {
	counts := make(map[uint]int, len(options))
	total := 0
	for _, v := range votes {
		if !f.Matches(v) {
			continue
		}
		// Голос за вариант, не принадлежащий вопросу, не учитываем
		if _, ok := counts[v.AnswerOptionID]; !ok {
			if !optionExists(options, v.AnswerOptionID) {
				continue
			}
		}
		counts[v.AnswerOptionID]++
		total++
	}

	perOption := make([]OptionStat, len(options))
	for i, opt := range options {
		count := counts[opt.ID]
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(100 * float64(count) / float64(total)))
		}
		perOption[i] = OptionStat{
			OptionID:   opt.ID,
			Text:       opt.Text,
			Order:      opt.Order,
			Count:      count,
			Percentage: percentage,
		}
	}

	sort.SliceStable(perOption, func(i, j int) bool {
		if perOption[i].Order != perOption[j].Order {
			return perOption[i].Order < perOption[j].Order
		}
		return perOption[i].OptionID < perOption[j].OptionID
	})

	return Result{
		QuestionID: questionID,
		TotalVotes: total,
		PerOption:  perOption,
	}
}

func optionExists(options []entity.AnswerOption, id uint) bool {
	for _, opt := range options {
		if opt.ID == id {
			return true
		}
	}
	return false
}
