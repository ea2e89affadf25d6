package presenter

import "github.com/yourusername/quorum-api/internal/domain/entity"

// Статические таблицы приоритетов для сортировки групп "прочих" вопросов.
// Это конфигурационные данные, а не вычисляемая логика: ключ - точное имя
// сущности, значение - ранг. Имени нет в таблице - ранг наименьшего
// приоритета, связи разрешаются сравнением строк.

// UnrankedPriority - ранг сущностей, отсутствующих в таблице
const UnrankedPriority = 999

var partyPriority = map[string]int{
	"PP":                1,
	"PSOE":              2,
	"VOX":               3,
	"Sumar":             4,
	"Podemos":           5,
	"ERC":               6,
	"Junts":             7,
	"PNV":               8,
	"EH Bildu":          9,
	"Coalición Canaria": 10,
}

var teamPriority = map[string]int{
	"Real Madrid":         1,
	"FC Barcelona":        2,
	"Atlético de Madrid":  3,
	"Athletic Club":       4,
	"Real Sociedad":       5,
	"Sevilla FC":          6,
	"Real Betis":          7,
	"Valencia CF":         8,
	"Villarreal CF":       9,
	"Girona FC":           10,
}

// RankOf возвращает приоритет сущности в модуле по ее имени
func RankOf(module entity.Module, name string) int {
	var table map[string]int
	if module == entity.ModulePolitics {
		table = partyPriority
	} else {
		table = teamPriority
	}
	if rank, ok := table[name]; ok {
		return rank
	}
	return UnrankedPriority
}
