package presenter

import (
	"sort"

	"github.com/yourusername/quorum-api/internal/domain/entity"
)

// Презентер группировки вопросов недели для просмотра пользователем.
// Разбивает вопросы на три корзины: общие, "моя аффилиация" и прочие,
// где прочие сгруппированы по имени сущности и отсортированы по статической
// таблице приоритетов.

// UnknownGroupName - имя группы для вопросов с висячей ссылкой на сущность.
// Такие вопросы не должны ронять группировку.
const UnknownGroupName = "Unknown"

// Group - группа "прочих" вопросов одной сущности
type Group struct {
	EntityName string            `json:"entity_name"`
	Rank       int               `json:"rank"`
	Questions  []entity.Question `json:"questions"`
}

// Grouped - результат разбиения вопросов для показа пользователю
type Grouped struct {
	General       []entity.Question `json:"general"`
	MyAffiliation []entity.Question `json:"my_affiliation"`
	Other         []Group           `json:"other"`
}

// GroupQuestions разбивает вопросы модуля на корзины относительно аффилиации
// зрителя. entityNames - отображение id сущности в имя (для группировки и
// рангов); отсутствующее имя трактуется как висячая ссылка.
func GroupQuestions(questions []entity.Question, module entity.Module, viewerAffiliation uint, entityNames map[uint]string) Grouped {
	var grouped Grouped
	groups := make(map[string]*Group)

	for _, q := range questions {
		if q.Scope != entity.ScopeSpecific {
			grouped.General = append(grouped.General, q)
			continue
		}

		ref := q.EntityRef()
		if ref != nil && *ref == viewerAffiliation {
			grouped.MyAffiliation = append(grouped.MyAffiliation, q)
			continue
		}

		name := UnknownGroupName
		if ref != nil {
			if n, ok := entityNames[*ref]; ok {
				name = n
			}
		}

		g, ok := groups[name]
		if !ok {
			g = &Group{EntityName: name, Rank: RankOf(module, name)}
			groups[name] = g
		}
		g.Questions = append(g.Questions, q)
	}

	for _, g := range groups {
		grouped.Other = append(grouped.Other, *g)
	}

	// Группы сортируются по рангу, связи - сравнением имен
	sort.Slice(grouped.Other, func(i, j int) bool {
		if grouped.Other[i].Rank != grouped.Other[j].Rank {
			return grouped.Other[i].Rank < grouped.Other[j].Rank
		}
		return grouped.Other[i].EntityName < grouped.Other[j].EntityName
	})

	return grouped
}
