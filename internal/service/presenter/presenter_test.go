package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quorum-api/internal/domain/entity"
)

func uintPtr(v uint) *uint { return &v }

func TestGroupQuestions_GeneralBucket(t *testing.T) {
	questions := []entity.Question{
		{ID: 1, Module: entity.ModulePolitics, Scope: entity.ScopeGeneral},
		{ID: 2, Module: entity.ModulePolitics, Scope: entity.ScopeTimeless},
	}

	grouped := GroupQuestions(questions, entity.ModulePolitics, 5, nil)

	assert.Len(t, grouped.General, 2, "общие и вневременные вопросы попадают в general")
	assert.Empty(t, grouped.MyAffiliation)
	assert.Empty(t, grouped.Other)
}

func TestGroupQuestions_MyAffiliationNeverLeaks(t *testing.T) {
	// Вопрос про партию зрителя всегда в myAffiliation, никогда в general/other
	questions := []entity.Question{
		{ID: 1, Module: entity.ModulePolitics, Scope: entity.ScopeSpecific, PartyID: uintPtr(2)},
		{ID: 2, Module: entity.ModulePolitics, Scope: entity.ScopeSpecific, PartyID: uintPtr(3)},
	}
	names := map[uint]string{2: "PSOE", 3: "VOX"}

	grouped := GroupQuestions(questions, entity.ModulePolitics, 2, names)

	require.Len(t, grouped.MyAffiliation, 1)
	assert.Equal(t, uint(1), grouped.MyAffiliation[0].ID)
	assert.Empty(t, grouped.General)
	require.Len(t, grouped.Other, 1)
	assert.Equal(t, "VOX", grouped.Other[0].EntityName)
}

func TestGroupQuestions_OtherSortedByPriorityTable(t *testing.T) {
	// PSOE (ранг 2) раньше VOX (ранг 3), неизвестная партия - последней (999)
	questions := []entity.Question{
		{ID: 1, Module: entity.ModulePolitics, Scope: entity.ScopeSpecific, PartyID: uintPtr(30)},
		{ID: 2, Module: entity.ModulePolitics, Scope: entity.ScopeSpecific, PartyID: uintPtr(10)},
		{ID: 3, Module: entity.ModulePolitics, Scope: entity.ScopeSpecific, PartyID: uintPtr(20)},
	}
	names := map[uint]string{10: "PSOE", 20: "VOX", 30: "Unknown Party"}

	grouped := GroupQuestions(questions, entity.ModulePolitics, 999, names)

	require.Len(t, grouped.Other, 3)
	assert.Equal(t, "PSOE", grouped.Other[0].EntityName)
	assert.Equal(t, "VOX", grouped.Other[1].EntityName)
	assert.Equal(t, "Unknown Party", grouped.Other[2].EntityName)
}

func TestGroupQuestions_UnlistedTieBreakByName(t *testing.T) {
	// Две не входящие в таблицу сущности сортируются сравнением строк
	questions := []entity.Question{
		{ID: 1, Module: entity.ModulePolitics, Scope: entity.ScopeSpecific, PartyID: uintPtr(1)},
		{ID: 2, Module: entity.ModulePolitics, Scope: entity.ScopeSpecific, PartyID: uintPtr(2)},
	}
	names := map[uint]string{1: "Zeta", 2: "Alfa"}

	grouped := GroupQuestions(questions, entity.ModulePolitics, 999, names)

	require.Len(t, grouped.Other, 2)
	assert.Equal(t, "Alfa", grouped.Other[0].EntityName)
	assert.Equal(t, "Zeta", grouped.Other[1].EntityName)
}

func TestGroupQuestions_DanglingEntityRef(t *testing.T) {
	// Висячая ссылка не роняет группировку: группа называется "Unknown"
	questions := []entity.Question{
		{ID: 1, Module: entity.ModulePolitics, Scope: entity.ScopeSpecific, PartyID: uintPtr(77)},
		{ID: 2, Module: entity.ModulePolitics, Scope: entity.ScopeSpecific, PartyID: nil},
	}

	grouped := GroupQuestions(questions, entity.ModulePolitics, 1, map[uint]string{})

	require.Len(t, grouped.Other, 1)
	assert.Equal(t, UnknownGroupName, grouped.Other[0].EntityName)
	assert.Len(t, grouped.Other[0].Questions, 2)
	assert.Equal(t, UnrankedPriority, grouped.Other[0].Rank)
}

func TestGroupQuestions_FootballUsesTeamRef(t *testing.T) {
	questions := []entity.Question{
		{ID: 1, Module: entity.ModuleFootball, Scope: entity.ScopeSpecific, TeamID: uintPtr(4)},
		{ID: 2, Module: entity.ModuleFootball, Scope: entity.ScopeSpecific, TeamID: uintPtr(5)},
	}
	names := map[uint]string{4: "Real Madrid", 5: "FC Barcelona"}

	grouped := GroupQuestions(questions, entity.ModuleFootball, 4, names)

	require.Len(t, grouped.MyAffiliation, 1)
	assert.Equal(t, uint(1), grouped.MyAffiliation[0].ID)
	require.Len(t, grouped.Other, 1)
	assert.Equal(t, "FC Barcelona", grouped.Other[0].EntityName)
}

func TestRankOf(t *testing.T) {
	assert.Equal(t, 2, RankOf(entity.ModulePolitics, "PSOE"))
	assert.Equal(t, 3, RankOf(entity.ModulePolitics, "VOX"))
	assert.Equal(t, 1, RankOf(entity.ModuleFootball, "Real Madrid"))
	assert.Equal(t, UnrankedPriority, RankOf(entity.ModulePolitics, "Unknown Party"))
	assert.Equal(t, UnrankedPriority, RankOf(entity.ModuleFootball, "psoe"), "регистр имеет значение")
}
