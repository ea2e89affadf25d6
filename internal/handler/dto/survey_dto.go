package dto

import (
	"sort"

	"github.com/yourusername/quorum-api/internal/domain/entity"
	"github.com/yourusername/quorum-api/internal/service"
	"github.com/yourusername/quorum-api/internal/service/presenter"
)

// FeedResponse - лента вопросов модуля для пользователя
type FeedResponse struct {
	WeekStart           string            `json:"week_start,omitempty"`
	General             []entity.Question `json:"general"`
	MyAffiliation       []entity.Question `json:"my_affiliation"`
	Other               []presenter.Group `json:"other"`
	AnsweredIDs         []uint            `json:"answered_ids"`
	PendingMandatoryIDs []uint            `json:"pending_mandatory_ids"`
}

// NewFeedResponse преобразует ленту сервиса в ответ API.
// Пустые корзины сериализуются как [], не null.
func NewFeedResponse(feed *service.QuestionFeed) FeedResponse {
	answered := make([]uint, 0, len(feed.AnsweredIDs))
	for id := range feed.AnsweredIDs {
		answered = append(answered, id)
	}
	sort.Slice(answered, func(i, j int) bool { return answered[i] < answered[j] })

	resp := FeedResponse{
		WeekStart:           feed.WeekStart,
		General:             feed.Grouped.General,
		MyAffiliation:       feed.Grouped.MyAffiliation,
		Other:               feed.Grouped.Other,
		AnsweredIDs:         answered,
		PendingMandatoryIDs: feed.PendingMandatoryIDs,
	}
	if resp.General == nil {
		resp.General = []entity.Question{}
	}
	if resp.MyAffiliation == nil {
		resp.MyAffiliation = []entity.Question{}
	}
	if resp.Other == nil {
		resp.Other = []presenter.Group{}
	}
	if resp.PendingMandatoryIDs == nil {
		resp.PendingMandatoryIDs = []uint{}
	}
	return resp
}
